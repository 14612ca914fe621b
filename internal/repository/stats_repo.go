package repository

import (
	"context"

	"stadiumbooking/internal/domain"

	"gorm.io/gorm"
)

type PlatformStats struct {
	TotalUsers       int64 `json:"total_users"`
	BannedUsers      int64 `json:"banned_users"`
	TotalStadiums    int64 `json:"total_stadiums"`
	TotalBookings    int64 `json:"total_bookings"`
	BookingsOnDay    int64 `json:"bookings_on_day"`
	CanceledBookings int64 `json:"canceled_bookings"`
	PendingPayments  int64 `json:"pending_payments"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Snapshot counts platform rows; BookingsOnDay counts non-canceled bookings
// whose date_at is day.
func (r *StatsRepository) Snapshot(ctx context.Context, day domain.Date) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	var s PlatformStats

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&s.TotalUsers, db.Model(&domain.User{})},
		{&s.BannedUsers, db.Model(&domain.User{}).Where("banned = ?", true)},
		{&s.TotalStadiums, db.Model(&domain.Stadium{})},
		{&s.TotalBookings, db.Model(&domain.Booking{})},
		{&s.BookingsOnDay, blocking(db.Model(&domain.Booking{})).Where("date_at = ?", day)},
		{&s.CanceledBookings, db.Model(&domain.Booking{}).Where("status = ?", domain.BookingCanceled)},
		{&s.PendingPayments, db.Model(&domain.Payment{}).Where("status = ?", domain.PaymentPending)},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, translate(err)
		}
	}
	return &s, nil
}
