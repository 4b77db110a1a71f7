package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/model"
)

// GetRoomAvailability reports whether the room accepts a stay beginning on
// startDate and the closest date on which it would. A room with an active
// reservation ending on E is still occupied on E itself, so a new stay can
// begin on E+1 at the earliest.
func (s *Service) GetRoomAvailability(ctx context.Context, roomID int64, startDate model.Date) (model.RoomAvailability, error) {
	rsv, err := s.repo.GetActiveReservationByRoom(ctx, roomID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return model.RoomAvailability{}, errors.Wrap(err, "active reservation lookup")
		}
		ok, err := s.repo.RoomExists(ctx, roomID)
		if err != nil {
			return model.RoomAvailability{}, errors.Wrap(err, "room lookup")
		}
		if !ok {
			return model.RoomAvailability{}, errs.ErrRoomNotFound
		}
		return model.RoomAvailability{
			IsAvailable:               true,
			ClosestAvailableStartDate: model.DateOf(s.clock.Now()).AddDays(1),
		}, nil
	}

	return model.RoomAvailability{
		IsAvailable:               startDate.After(rsv.EndDate),
		ClosestAvailableStartDate: rsv.EndDate.AddDays(1),
	}, nil
}
