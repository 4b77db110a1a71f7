package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/internal/repository"
)

type Service struct {
	log   *zap.Logger
	repo  repository.Repository
	clock Clock
}

func NewService(repo repository.Repository, log *zap.Logger, clock Clock) *Service {
	return &Service{
		log:   log,
		repo:  repo,
		clock: clock,
	}
}

// CreateReservation validates the requested stay, resolves the referenced
// room and user, and persists a new ACTIVE reservation.
func (s *Service) CreateReservation(ctx context.Context, userID, roomID int64, startDate, endDate model.Date) (model.Reservation, error) {
	if err := s.validateDates(ctx, roomID, startDate, endDate); err != nil {
		return model.Reservation{}, err
	}

	ok, err := s.repo.RoomExists(ctx, roomID)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "room lookup")
	}
	if !ok {
		return model.Reservation{}, errs.ErrRoomNotFound
	}
	ok, err = s.repo.UserExists(ctx, userID)
	if err != nil {
		return model.Reservation{}, errors.Wrap(err, "user lookup")
	}
	if !ok {
		return model.Reservation{}, errs.ErrUserNotFound
	}

	rsv := model.Reservation{
		UserID:    userID,
		RoomID:    roomID,
		Status:    model.StatusActive,
		StartDate: startDate,
		EndDate:   endDate,
	}
	created, err := s.repo.CreateReservation(ctx, rsv)
	if err != nil {
		return model.Reservation{}, err
	}
	s.log.Info("reservation created",
		zap.Int64("reservationId", created.ID),
		zap.Int64("roomId", created.RoomID),
		zap.String("startDate", created.StartDate.String()),
		zap.String("endDate", created.EndDate.String()),
	)
	return created, nil
}

// UpdateReservation re-validates the new dates against the reservation's
// existing room and mutates the dates in place. Only ACTIVE reservations
// can be updated.
func (s *Service) UpdateReservation(ctx context.Context, reservationID int64, startDate, endDate model.Date) (model.Reservation, error) {
	rsv, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if rsv.Status != model.StatusActive {
		return model.Reservation{}, errs.ErrNotActive
	}
	if err := s.validateDates(ctx, rsv.RoomID, startDate, endDate); err != nil {
		return model.Reservation{}, err
	}

	rsv.StartDate = startDate
	rsv.EndDate = endDate
	if err := s.repo.SaveReservation(ctx, rsv); err != nil {
		return model.Reservation{}, err
	}
	s.log.Info("reservation updated", zap.Int64("reservationId", rsv.ID))
	return rsv, nil
}

// CancelReservation transitions an ACTIVE reservation to CANCELLED. There is
// no transition out of CANCELLED or FINISHED.
func (s *Service) CancelReservation(ctx context.Context, reservationID int64) (model.Reservation, error) {
	rsv, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if rsv.Status != model.StatusActive {
		return model.Reservation{}, errs.ErrNotActive
	}

	rsv.Status = model.StatusCancelled
	if err := s.repo.SaveReservation(ctx, rsv); err != nil {
		return model.Reservation{}, err
	}
	s.log.Info("reservation cancelled", zap.Int64("reservationId", rsv.ID))
	return rsv, nil
}

func (s *Service) getReservation(ctx context.Context, reservationID int64) (model.Reservation, error) {
	rsv, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Reservation{}, errs.ErrReservationNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}
