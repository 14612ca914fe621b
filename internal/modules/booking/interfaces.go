package booking

import (
	"context"

	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/repository"
)

type BookingRepository interface {
	Admit(ctx context.Context, b *domain.Booking, check func(existing []domain.Booking) error) error
	GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error)
}

type StadiumRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Stadium, error)
}

// SearchInvalidator drops cached search results after a booking is admitted.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}
