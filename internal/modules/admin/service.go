package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCannotBanAdmin = errors.New("admins cannot be banned")
)

type Service struct {
	users   UserRepository
	stats   StatsRepository
	now     func() time.Time
	loggerf func(format string, args ...interface{})
}

func NewService(users UserRepository, stats StatsRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{users: users, stats: stats, now: time.Now, loggerf: loggerf}
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context, caller access.Caller) (*repository.PlatformStats, error) {
	if err := access.Authorize(caller, access.ModerateUsers, 0); err != nil {
		return nil, err
	}
	st, err := s.stats.Snapshot(ctx, domain.DateOf(s.now()))
	if err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	return st, nil
}

// -------------------- Users moderation --------------------
//
// A banned user keeps their data and bookings but every authenticated
// request is refused; the JWT middleware reads the flag on each call.

func (s *Service) BanUser(ctx context.Context, caller access.Caller, userID int64, reason string) (*domain.User, error) {
	return s.setBanned(ctx, caller, userID, true, reason)
}

func (s *Service) UnbanUser(ctx context.Context, caller access.Caller, userID int64) (*domain.User, error) {
	return s.setBanned(ctx, caller, userID, false, "")
}

func (s *Service) setBanned(ctx context.Context, caller access.Caller, userID int64, banned bool, reason string) (*domain.User, error) {
	if err := access.Authorize(caller, access.ModerateUsers, 0); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	if banned && u.Role == domain.RoleAdmin {
		return nil, ErrCannotBanAdmin
	}

	if u.Banned != banned {
		if err := s.users.SetBanned(ctx, userID, banned); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("update user %d: %w", userID, err)
		}
		u.Banned = banned
	}

	s.loggerf("level=info msg=user moderation admin_id=%d user_id=%d banned=%t reason=%q", caller.UserID, userID, banned, reason)
	return u, nil
}

// ListUsers supports simple filters + pagination
func (s *Service) ListUsers(ctx context.Context, caller access.Caller, filter UserListFilter, page, limit int) ([]domain.User, int64, error) {
	if err := access.Authorize(caller, access.ModerateUsers, 0); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:   domain.UserRole(filter.Role),
		Banned: filter.Banned,
		Query:  filter.Query,
	}, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}
