// Package access holds the single ownership/role check used by every
// mutating operation on stadiums, bookings, payments and users.
package access

import (
	"errors"

	"stadiumbooking/internal/domain"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type Capability string

const (
	// CreateStadium is granted by role alone.
	CreateStadium Capability = "stadium:create"
	// ManageStadium covers update and delete of a stadium's metadata.
	ManageStadium Capability = "stadium:manage"
	// ManageBookings covers listing and deleting a stadium's bookings.
	ManageBookings Capability = "bookings:manage"
	// PayBooking is reserved to the user who made the booking.
	PayBooking Capability = "booking:pay"
	// CreateBooking is open to every signed-in, non-banned user.
	CreateBooking Capability = "booking:create"
	// ModerateUsers covers banning users and reading platform statistics.
	ModerateUsers Capability = "users:moderate"
)

// Caller is the authenticated identity taken from the access token.
type Caller struct {
	UserID int64
	Role   domain.UserRole
	Banned bool
}

func (c Caller) IsAdmin() bool { return c.Role == domain.RoleAdmin }

// Authorize decides whether caller may exercise cap on a resource owned by
// ownerID. ownerID is ignored for CreateStadium. Admins pass every ownership
// check except PayBooking.
func Authorize(caller Caller, cap Capability, ownerID int64) error {
	if caller.UserID == 0 {
		return ErrUnauthenticated
	}
	if caller.Banned {
		return ErrForbidden
	}

	switch cap {
	case CreateBooking:
		return nil
	case CreateStadium:
		if caller.Role == domain.RoleOwner || caller.IsAdmin() {
			return nil
		}
	case ManageStadium, ManageBookings:
		if caller.IsAdmin() {
			return nil
		}
		if caller.Role == domain.RoleOwner && caller.UserID == ownerID {
			return nil
		}
	case ModerateUsers:
		if caller.IsAdmin() {
			return nil
		}
	case PayBooking:
		if caller.UserID == ownerID {
			return nil
		}
	}
	return ErrForbidden
}
