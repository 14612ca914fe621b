package domain

import "time"

type BookingStatus string

const (
	BookingNotStarted BookingStatus = "not_started"
	BookingContinuing BookingStatus = "continuing"
	BookingFinished   BookingStatus = "finished"
	BookingCanceled   BookingStatus = "canceled"
)

// Blocks reports whether a booking in this status occupies its slot.
// Canceled bookings free the slot for both admission and search.
func (s BookingStatus) Blocks() bool {
	return s != BookingCanceled
}

type Booking struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	UserID    int64         `json:"user_id" gorm:"not null;index"`
	StadiumID int64         `json:"stadium_id" gorm:"not null;index:idx_bookings_stadium_date"`
	DateAt    Date          `json:"date_at" gorm:"type:date;not null;index:idx_bookings_stadium_date;index"`
	StartTime TimeOfDay     `json:"start_time" gorm:"type:time;not null"`
	EndTime   TimeOfDay     `json:"end_time" gorm:"type:time;not null"`
	Status    BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'not_started';index"`
	CreatedAt time.Time     `json:"created_at"`
}

func (b Booking) Slot() Slot {
	return Slot{Start: b.StartTime, End: b.EndTime}
}
