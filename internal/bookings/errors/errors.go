package errors

import "errors"

var (
	ErrNotOwnBooking = errors.New("booking belongs to another account")

	ErrServiceNotOffered = errors.New("provider does not offer this service")

	ErrDateInPast = errors.New("scheduled date is in the past")
)
