package domain

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentApproved     PaymentStatus = "approved"
	PaymentDeclined     PaymentStatus = "declined"
	PaymentOutOfBalance PaymentStatus = "out_of_balance"
)

// Payment is persisted when a user pays for a booking. Settlement is not
// handled here; rows stay pending until an external processor updates them.
type Payment struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	BookingID     int64         `json:"booking_id" gorm:"not null;index"`
	Amount        int64         `json:"amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(10);not null;default:'cash'"`
	CardNumber    *string       `json:"-" gorm:"size:16"`
	ExpDate       *string       `json:"-" gorm:"size:5"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time     `json:"created_at"`
}
