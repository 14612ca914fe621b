package repository

import (
	"context"

	"stadiumbooking/internal/domain"

	"gorm.io/gorm"
)

type StadiumRepository struct {
	db *gorm.DB
}

func NewStadiumRepository(db *gorm.DB) *StadiumRepository {
	return &StadiumRepository{db: db}
}

// Create inserts a stadium; a taken name yields ErrDuplicate.
func (r *StadiumRepository) Create(ctx context.Context, s *domain.Stadium) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *StadiumRepository) GetByID(ctx context.Context, id int64) (*domain.Stadium, error) {
	var s domain.Stadium
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// GetByName returns ErrNotFound when the name is free.
func (r *StadiumRepository) GetByName(ctx context.Context, name string) (*domain.Stadium, error) {
	var s domain.Stadium
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// Update overwrites every column of the stadium.
func (r *StadiumRepository) Update(ctx context.Context, s *domain.Stadium) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

// Delete removes the stadium together with its bookings and their payments.
func (r *StadiumRepository) Delete(ctx context.Context, id int64) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingIDs := tx.Model(&domain.Booking{}).Select("id").Where("stadium_id = ?", id)
		if err := tx.Where("booking_id IN (?)", bookingIDs).Delete(&domain.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("stadium_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Stadium{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// ListAll returns the whole catalog ordered by id.
func (r *StadiumRepository) ListAll(ctx context.Context) ([]domain.Stadium, error) {
	var out []domain.Stadium
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *StadiumRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Stadium, error) {
	var out []domain.Stadium
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}
