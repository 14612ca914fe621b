package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountBanned      = errors.New("account banned")
	ErrInvalidRole        = errors.New("role not allowed for self registration")
	ErrUserNotFound       = errors.New("user not found")
)
