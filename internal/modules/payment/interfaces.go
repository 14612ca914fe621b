package payment

import (
	"context"

	"stadiumbooking/internal/domain"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type stadiumReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Stadium, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}
