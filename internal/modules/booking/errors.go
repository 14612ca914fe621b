package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("stadium not found")
	ErrConflict   = errors.New("stadium already booked for this time range")
)
