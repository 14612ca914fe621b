package catalog

import (
	"context"

	"stadiumbooking/internal/domain"
)

type StadiumRepository interface {
	Create(ctx context.Context, s *domain.Stadium) error
	GetByID(ctx context.Context, id int64) (*domain.Stadium, error)
	GetByName(ctx context.Context, name string) (*domain.Stadium, error)
	Update(ctx context.Context, s *domain.Stadium) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Stadium, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Stadium, error)
}

type BookingRepository interface {
	ListBlockingOn(ctx context.Context, date domain.Date) ([]domain.Booking, error)
	ListByStadium(ctx context.Context, stadiumID int64) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}
