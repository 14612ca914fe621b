package booking

import (
	"time"

	"stadiumbooking/internal/domain"
)

type CreateBookingRequest struct {
	DateAt    *domain.Date      `json:"date_at" binding:"required"`
	StartTime *domain.TimeOfDay `json:"start_time" binding:"required"`
	EndTime   *domain.TimeOfDay `json:"end_time" binding:"required"`
}

type BookingDetails struct {
	ID          int64                `json:"id"`
	Status      domain.BookingStatus `json:"status"`
	DateAt      domain.Date          `json:"date_at"`
	StartTime   domain.TimeOfDay     `json:"start_time"`
	EndTime     domain.TimeOfDay     `json:"end_time"`
	StadiumID   int64                `json:"stadium_id"`
	StadiumName string               `json:"stadium_name"`
	CreatedAt   time.Time            `json:"created_at"`
}
