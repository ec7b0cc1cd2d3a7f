package models

import (
	"errors"
)

var (
	ErrValidation         = errors.New("models: missing or malformed input")
	ErrBookingNotFound    = errors.New("models: booking not found")
	ErrModelNotFound      = errors.New("models: model not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrUnauthorized       = errors.New("models: acting party does not own this resource")
	ErrInvalidState       = errors.New("models: operation not valid for current booking status")
	ErrNotReady           = errors.New("models: booking not ready for payment release")
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
)
