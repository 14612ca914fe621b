package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"stadiumbooking/internal/access"
	"stadiumbooking/internal/domain"
	"stadiumbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	return m.Called(ctx, id, banned).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Snapshot(ctx context.Context, day domain.Date) (*repository.PlatformStats, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PlatformStats), args.Error(1)
}

/* ==================== HELPERS ==================== */

var (
	adminCaller = access.Caller{UserID: 1, Role: domain.RoleAdmin}
	ownerCaller = access.Caller{UserID: 2, Role: domain.RoleOwner}
)

func newService() (*Service, *MockUserRepository, *MockStatsRepository) {
	users := new(MockUserRepository)
	stats := new(MockStatsRepository)
	svc := NewService(users, stats, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC) }
	return svc, users, stats
}

/* ==================== TESTS ==================== */

func TestBanUser_Success(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleUser}, nil)
	users.On("SetBanned", ctx, int64(7), true).Return(nil)

	u, err := svc.BanUser(ctx, adminCaller, 7, "spam bookings")
	require.NoError(t, err)
	assert.True(t, u.Banned)
	users.AssertExpectations(t)
}

func TestBanUser_AlreadyBannedIsNoop(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleUser, Banned: true}, nil)

	u, err := svc.BanUser(ctx, adminCaller, 7, "again")
	require.NoError(t, err)
	assert.True(t, u.Banned)
	users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
}

func TestBanUser_RejectsAdminTarget(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Role: domain.RoleAdmin}, nil)

	_, err := svc.BanUser(ctx, adminCaller, 9, "nope")
	assert.ErrorIs(t, err, ErrCannotBanAdmin)
	users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
}

func TestBanUser_NotFound(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.BanUser(ctx, adminCaller, 404, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBanUser_RequiresAdmin(t *testing.T) {
	svc, users, _ := newService()

	_, err := svc.BanUser(context.Background(), ownerCaller, 7, "rival")
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.UnbanUser(context.Background(), access.Caller{}, 7)
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUnbanUser_Success(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()

	users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleOwner, Banned: true}, nil)
	users.On("SetBanned", ctx, int64(7), false).Return(nil)

	u, err := svc.UnbanUser(ctx, adminCaller, 7)
	require.NoError(t, err)
	assert.False(t, u.Banned)
	users.AssertExpectations(t)
}

func TestListUsers_PaginationAndFilter(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	banned := true

	want := repository.UserFilter{Role: domain.RoleOwner, Banned: &banned, Query: "arena"}
	users.On("List", ctx, want, 10, 20).Return([]domain.User{{ID: 3}}, int64(21), nil)

	items, total, err := svc.ListUsers(ctx, adminCaller, UserListFilter{Role: "owner", Banned: &banned, Query: "arena"}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(21), total)
}

func TestListUsers_DefaultsAndStoreError(t *testing.T) {
	svc, users, _ := newService()
	ctx := context.Background()
	boom := errors.New("db down")

	users.On("List", ctx, repository.UserFilter{}, 20, 0).Return(nil, int64(0), boom)

	_, _, err := svc.ListUsers(ctx, adminCaller, UserListFilter{}, 0, 500)
	assert.ErrorIs(t, err, boom)
}

func TestGetStatistics_UsesToday(t *testing.T) {
	svc, _, stats := newService()
	ctx := context.Background()
	day, _ := domain.ParseDate("2025-03-08")

	stats.On("Snapshot", ctx, day).Return(&repository.PlatformStats{TotalUsers: 4, BookingsOnDay: 2}, nil)

	st, err := svc.GetStatistics(ctx, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalUsers)
	assert.Equal(t, int64(2), st.BookingsOnDay)

	_, err = svc.GetStatistics(ctx, ownerCaller)
	assert.ErrorIs(t, err, access.ErrForbidden)
}
