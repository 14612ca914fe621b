package admin

import (
	"context"

	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetBanned(ctx context.Context, id int64, banned bool) error
	List(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int64, error)
}

type StatsRepository interface {
	Snapshot(ctx context.Context, day domain.Date) (*repository.PlatformStats, error)
}
