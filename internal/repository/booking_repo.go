package repository

import (
	"context"
	"fmt"
	"time"

	"stadiumbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func blocking(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", domain.BookingCanceled)
}

// FindForStadiumOnDate returns the bookings that occupy slots of one
// stadium on one date.
func (r *BookingRepository) FindForStadiumOnDate(ctx context.Context, stadiumID int64, date domain.Date) ([]domain.Booking, error) {
	var out []domain.Booking
	err := blocking(r.db.WithContext(ctx)).
		Where("stadium_id = ? AND date_at = ?", stadiumID, date).
		Order("start_time").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ListBlockingOn returns every slot-occupying booking on date, for all stadiums.
func (r *BookingRepository) ListBlockingOn(ctx context.Context, date domain.Date) ([]domain.Booking, error) {
	var out []domain.Booking
	err := blocking(r.db.WithContext(ctx)).
		Where("date_at = ?", date).
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// admissionLockKey names the (stadium, date) pair Admit serializes on. The
// server hashes it into the single 64-bit advisory lock space.
func admissionLockKey(b *domain.Booking) string {
	return fmt.Sprintf("booking:%d:%s", b.StadiumID, b.DateAt)
}

// Admit runs check against the current bookings of b's stadium and date and
// inserts b if check returns nil, all in one transaction. On PostgreSQL the
// transaction first takes an advisory lock on (stadium, date) so concurrent
// admissions for the same day run one after another; the bookings_no_overlap
// constraint backs this up and surfaces as ErrOverlap.
func (r *BookingRepository) Admit(ctx context.Context, b *domain.Booking, check func(existing []domain.Booking) error) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := blocking(tx)
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", admissionLockKey(b)).Error; err != nil {
				return err
			}
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing []domain.Booking
		if err := q.Where("stadium_id = ? AND date_at = ?", b.StadiumID, b.DateAt).Find(&existing).Error; err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}
		return tx.Create(b).Error
	}))
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingRepository) ListByStadium(ctx context.Context, stadiumID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("stadium_id = ?", stadiumID).
		Order("date_at, start_time").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Delete removes the booking and its payments so the slot is free again.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&domain.Payment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

type UserBookingDetails struct {
	ID          int64                `gorm:"column:id"`
	StadiumID   int64                `gorm:"column:stadium_id"`
	StadiumName string               `gorm:"column:stadium_name"`
	DateAt      domain.Date          `gorm:"column:date_at"`
	StartTime   domain.TimeOfDay     `gorm:"column:start_time"`
	EndTime     domain.TimeOfDay     `gorm:"column:end_time"`
	Status      domain.BookingStatus `gorm:"column:status"`
	CreatedAt   time.Time            `gorm:"column:created_at"`
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]UserBookingDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []UserBookingDetails
	q := `
SELECT
  b.id,
  b.stadium_id,
  s.name AS stadium_name,
  b.date_at,
  b.start_time,
  b.end_time,
  b.status,
  b.created_at
FROM bookings b
JOIN stadiums s ON s.id = b.stadium_id
WHERE b.user_id = ?
ORDER BY b.date_at DESC, b.start_time DESC
LIMIT ? OFFSET ?
`
	if err := r.db.WithContext(ctx).Raw(q, userID, limit, offset).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
