package handler

import (
	"context"

	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	CreateReservation(ctx context.Context, userID, roomID int64, startDate, endDate model.Date) (model.Reservation, error)
	UpdateReservation(ctx context.Context, reservationID int64, startDate, endDate model.Date) (model.Reservation, error)
	CancelReservation(ctx context.Context, reservationID int64) (model.Reservation, error)
	GetRoomAvailability(ctx context.Context, roomID int64, startDate model.Date) (model.RoomAvailability, error)
}

var _ ReservationService = (*service.Service)(nil)
