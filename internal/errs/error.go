package errs

import (
	"errors"
)

var ErrNotFound = errors.New("not found")

// Business-rule violations. Each validation rule fails with exactly one of
// these; the transport maps them all to 400 with the error text as message.
var (
	ErrEqualDates          = errors.New("the start and end date cannot be the same")
	ErrStartsToday         = errors.New("reservation cannot start today")
	ErrStartAfterEnd       = errors.New("the start date cannot be after the end date")
	ErrTooLong             = errors.New("reservation period cannot be greater than 3 days")
	ErrTooFarInFuture      = errors.New("reservation cannot be more than 30 days into the future")
	ErrRoomUnavailable     = errors.New("room is already reserved in the provided period")
	ErrRoomNotFound        = errors.New("no room found with the provided id")
	ErrUserNotFound        = errors.New("no user found with the provided id")
	ErrReservationNotFound = errors.New("no reservation found with the given id")
	ErrNotActive           = errors.New("reservation must be active")
)

var businessErrors = []error{
	ErrEqualDates,
	ErrStartsToday,
	ErrStartAfterEnd,
	ErrTooLong,
	ErrTooFarInFuture,
	ErrRoomUnavailable,
	ErrRoomNotFound,
	ErrUserNotFound,
	ErrReservationNotFound,
	ErrNotActive,
}

// IsBusinessRule reports whether err is a deterministic business-rule
// violation rather than an infrastructure failure.
func IsBusinessRule(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}
