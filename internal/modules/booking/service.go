package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("stadiumbooking/booking")

type Service struct {
	bookings BookingRepository
	stadiums StadiumRepository
	search   SearchInvalidator
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(
	bookings BookingRepository,
	stadiums StadiumRepository,
	search SearchInvalidator,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings: bookings,
		stadiums: stadiums,
		search:   search,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

// CreateBooking admits the requested slot if it is well-formed, not in the
// past, and free of every blocking booking on the same stadium and date.
// The conflict check and the insert happen in one store transaction.
func (s *Service) CreateBooking(ctx context.Context, caller access.Caller, stadiumID int64, req CreateBookingRequest) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()
	span.SetAttributes(attribute.Int64("stadium.id", stadiumID))

	if err := access.Authorize(caller, access.CreateBooking, 0); err != nil {
		return nil, err
	}
	if req.DateAt == nil || req.StartTime == nil || req.EndTime == nil {
		return nil, ErrValidation
	}

	slot := domain.Slot{Start: *req.StartTime, End: *req.EndTime}
	if !slot.Valid() {
		return nil, ErrValidation
	}
	if domain.InPast(*req.DateAt, slot.Start, s.now()) {
		return nil, ErrValidation
	}

	if _, err := s.stadiums.GetByID(ctx, stadiumID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load stadium %d: %w", stadiumID, err)
	}

	b := &domain.Booking{
		UserID:    caller.UserID,
		StadiumID: stadiumID,
		DateAt:    *req.DateAt,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    domain.BookingNotStarted,
	}

	err := s.bookings.Admit(ctx, b, func(existing []domain.Booking) error {
		for _, e := range existing {
			if e.Status.Blocks() && e.Slot().Overlaps(slot) {
				return ErrConflict
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, repository.ErrOverlap):
		s.loggerf("level=info msg=booking rejected stadium_id=%d date=%s start=%s end=%s user_id=%d",
			stadiumID, b.DateAt, b.StartTime, b.EndTime, caller.UserID)
		return nil, ErrConflict
	case err != nil:
		return nil, fmt.Errorf("admit booking: %w", err)
	}

	if err := s.search.Invalidate(ctx); err != nil {
		s.loggerf("level=warn msg=search cache invalidate failed err=%v", err)
	}
	s.loggerf("level=info msg=booking created booking_id=%d stadium_id=%d date=%s start=%s end=%s",
		b.ID, stadiumID, b.DateAt, b.StartTime, b.EndTime)
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, caller access.Caller, limit, offset int) ([]BookingDetails, error) {
	if caller.UserID == 0 {
		return nil, access.ErrUnauthenticated
	}

	rows, err := s.bookings.GetUserBookingsWithDetails(ctx, caller.UserID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingDetails{
			ID:          r.ID,
			Status:      r.Status,
			DateAt:      r.DateAt,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			StadiumID:   r.StadiumID,
			StadiumName: r.StadiumName,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}
