package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/cache"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/pkg/utils"
	"stadiumbooking/internal/pkg/validator"
	"stadiumbooking/internal/repository"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("stadiumbooking/catalog")

type Service struct {
	stadiums StadiumRepository
	bookings BookingRepository
	cache    cache.SearchCache
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(
	stadiums StadiumRepository,
	bookings BookingRepository,
	searchCache cache.SearchCache,
	loggerf func(format string, args ...interface{}),
) *Service {
	if searchCache == nil {
		searchCache = cache.NoopSearchCache{}
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		stadiums: stadiums,
		bookings: bookings,
		cache:    searchCache,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

func normalize(req *StadiumRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.Contact = strings.TrimSpace(req.Contact)
	req.Images = utils.NormalizeImages(req.Images)
	if fields := validator.Validate(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) invalidateSearch(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.loggerf("level=warn msg=search cache invalidate failed err=%v", err)
	}
}

func (s *Service) getStadium(ctx context.Context, id int64) (*domain.Stadium, error) {
	st, err := s.stadiums.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load stadium %d: %w", id, err)
	}
	return st, nil
}

// nameTaken reports whether another stadium already uses name.
func (s *Service) nameTaken(ctx context.Context, name string, selfID int64) (bool, error) {
	other, err := s.stadiums.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup stadium name: %w", err)
	}
	return other.ID != selfID, nil
}

/* ---------- STADIUM ---------- */

func (s *Service) CreateStadium(ctx context.Context, caller access.Caller, req StadiumRequest) (*domain.Stadium, error) {
	if err := access.Authorize(caller, access.CreateStadium, 0); err != nil {
		return nil, err
	}
	if err := normalize(&req); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrStadiumExists
	}

	st := &domain.Stadium{
		OwnerID:      caller.UserID,
		Name:         req.Name,
		Address:      req.Address,
		Contact:      req.Contact,
		Images:       req.Images,
		PricePerHour: req.PricePerHour,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Description:  req.Description,
	}
	if err := s.stadiums.Create(ctx, st); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStadiumExists
		}
		return nil, fmt.Errorf("create stadium: %w", err)
	}

	s.invalidateSearch(ctx)
	s.loggerf("level=info msg=stadium created stadium_id=%d owner_id=%d", st.ID, st.OwnerID)
	return st, nil
}

// UpdateStadium overwrites every editable field of the stadium.
func (s *Service) UpdateStadium(ctx context.Context, caller access.Caller, id int64, req StadiumRequest) (*domain.Stadium, error) {
	st, err := s.getStadium(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, access.ManageStadium, st.OwnerID); err != nil {
		return nil, err
	}
	if err := normalize(&req); err != nil {
		return nil, err
	}

	if req.Name != st.Name {
		taken, err := s.nameTaken(ctx, req.Name, st.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrStadiumExists
		}
	}

	st.Name = req.Name
	st.Address = req.Address
	st.Contact = req.Contact
	st.Images = req.Images
	st.PricePerHour = req.PricePerHour
	st.Latitude = req.Latitude
	st.Longitude = req.Longitude
	st.Description = req.Description

	if err := s.stadiums.Update(ctx, st); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStadiumExists
		}
		return nil, fmt.Errorf("update stadium %d: %w", id, err)
	}

	s.invalidateSearch(ctx)
	return st, nil
}

// DeleteStadium removes the stadium with all its bookings and payments.
func (s *Service) DeleteStadium(ctx context.Context, caller access.Caller, id int64) error {
	st, err := s.getStadium(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(caller, access.ManageStadium, st.OwnerID); err != nil {
		return err
	}

	if err := s.stadiums.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete stadium %d: %w", id, err)
	}

	s.invalidateSearch(ctx)
	s.loggerf("level=info msg=stadium deleted stadium_id=%d by=%d", id, caller.UserID)
	return nil
}

func (s *Service) GetStadium(ctx context.Context, id int64) (*domain.Stadium, error) {
	return s.getStadium(ctx, id)
}

func (s *Service) ListMyStadiums(ctx context.Context, caller access.Caller) ([]domain.Stadium, error) {
	if caller.UserID == 0 {
		return nil, access.ErrUnauthenticated
	}
	out, err := s.stadiums.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list stadiums of %d: %w", caller.UserID, err)
	}
	return out, nil
}

/* ---------- STADIUM BOOKINGS ---------- */

func (s *Service) stadiumBooking(ctx context.Context, stadiumID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if b.StadiumID != stadiumID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListStadiumBookings returns every booking of the stadium, or only bookingID
// when it is set.
func (s *Service) ListStadiumBookings(ctx context.Context, caller access.Caller, stadiumID int64, bookingID *int64) ([]domain.Booking, error) {
	st, err := s.getStadium(ctx, stadiumID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, access.ManageBookings, st.OwnerID); err != nil {
		return nil, err
	}

	if bookingID != nil {
		b, err := s.stadiumBooking(ctx, stadiumID, *bookingID)
		if err != nil {
			return nil, err
		}
		return []domain.Booking{*b}, nil
	}

	out, err := s.bookings.ListByStadium(ctx, stadiumID)
	if err != nil {
		return nil, fmt.Errorf("list bookings of stadium %d: %w", stadiumID, err)
	}
	return out, nil
}

// DeleteStadiumBooking removes the booking so its slot is free again.
func (s *Service) DeleteStadiumBooking(ctx context.Context, caller access.Caller, stadiumID, bookingID int64) error {
	st, err := s.getStadium(ctx, stadiumID)
	if err != nil {
		return err
	}
	if err := access.Authorize(caller, access.ManageBookings, st.OwnerID); err != nil {
		return err
	}
	if _, err := s.stadiumBooking(ctx, stadiumID, bookingID); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}

	s.invalidateSearch(ctx)
	s.loggerf("level=info msg=booking deleted booking_id=%d stadium_id=%d by=%d", bookingID, stadiumID, caller.UserID)
	return nil
}
