package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/pkg/validator"
	"stadiumbooking/internal/repository"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingCanceled = errors.New("booking is canceled")
	ErrInvalidCard     = errors.New("invalid card details")
	ErrInvalidMethod   = errors.New("invalid payment method")
)

type Service struct {
	payments paymentRepo
	bookings bookingReader
	stadiums stadiumReader
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(payments paymentRepo, bookings bookingReader, stadiums stadiumReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		stadiums: stadiums,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

// Amount is the price of the booked hours, rounded to the nearest unit.
func Amount(pricePerHour int64, b *domain.Booking) int64 {
	return int64(math.Round(float64(pricePerHour) * b.StartTime.Hours(b.EndTime)))
}

func (s *Service) payableBooking(ctx context.Context, caller access.Caller, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if err := access.Authorize(caller, access.PayBooking, b.UserID); err != nil {
		return nil, err
	}
	return b, nil
}

// CreatePayment records a pending payment for the caller's own booking.
func (s *Service) CreatePayment(ctx context.Context, caller access.Caller, bookingID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	b, err := s.payableBooking(ctx, caller, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCanceled {
		return nil, ErrBookingCanceled
	}

	p := &domain.Payment{
		BookingID: b.ID,
		Status:    domain.PaymentPending,
	}

	switch domain.PaymentMethod(req.PaymentMethod) {
	case domain.PaymentCash:
		p.PaymentMethod = domain.PaymentCash
	case domain.PaymentCard:
		card := strings.ReplaceAll(req.CardNumber, " ", "")
		if !validator.Var(card, "cardnumber") || !validator.Var(req.ExpDate, "expdate") {
			return nil, ErrInvalidCard
		}
		if cardExpired(req.ExpDate, s.now()) {
			return nil, ErrInvalidCard
		}
		// only the last four digits are kept
		masked := strings.Repeat("*", 12) + card[12:]
		exp := req.ExpDate
		p.PaymentMethod = domain.PaymentCard
		p.CardNumber = &masked
		p.ExpDate = &exp
	default:
		return nil, ErrInvalidMethod
	}

	st, err := s.stadiums.GetByID(ctx, b.StadiumID)
	if err != nil {
		return nil, fmt.Errorf("load stadium %d: %w", b.StadiumID, err)
	}
	p.Amount = Amount(st.PricePerHour, b)

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.loggerf("level=info msg=payment created payment_id=%d booking_id=%d method=%s amount=%d",
		p.ID, b.ID, p.PaymentMethod, p.Amount)
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context, caller access.Caller, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.payableBooking(ctx, caller, bookingID); err != nil {
		return nil, err
	}
	out, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list payments of booking %d: %w", bookingID, err)
	}
	return out, nil
}

// cardExpired treats MM/YY as valid through the last day of that month.
func cardExpired(exp string, now time.Time) bool {
	t, err := time.Parse("01/06", exp)
	if err != nil {
		return true
	}
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return !now.Before(firstOfNext)
}
