package service

import (
	"context"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/model"
)

const (
	// A stay spanning maxReservationDays or more is rejected; the span is
	// endDate - startDate in whole days.
	maxReservationDays = 3
	// A reservation may start at most maxFutureDays after the current date.
	maxFutureDays = 30
)

// validateDates enforces the reservation rules in a fixed order and fails
// fast on the first violation, so every rejection carries exactly one
// message. The order is load-bearing for error reporting.
func (s *Service) validateDates(ctx context.Context, roomID int64, startDate, endDate model.Date) error {
	if startDate.Equal(endDate) {
		return errs.ErrEqualDates
	}
	today := model.DateOf(s.clock.Now())
	if startDate.Equal(today) {
		return errs.ErrStartsToday
	}
	if startDate.After(endDate) {
		return errs.ErrStartAfterEnd
	}
	if startDate.DaysUntil(endDate) >= maxReservationDays {
		return errs.ErrTooLong
	}
	if startDate.After(today.AddDays(maxFutureDays)) {
		return errs.ErrTooFarInFuture
	}

	availability, err := s.GetRoomAvailability(ctx, roomID, startDate)
	if err != nil {
		return err
	}
	if !availability.IsAvailable {
		return errs.ErrRoomUnavailable
	}
	return nil
}
