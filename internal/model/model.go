package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusFinished  Status = "FINISHED"
)

// Date is a calendar date without time of day. On the wire it is
// "YYYY-MM-DD"; in postgres it maps to a date column.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.AddDate(0, 0, days))
}

// DaysUntil returns the signed number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time) / (24 * time.Hour))
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(time.DateOnly), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		*d = DateOf(t)
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

type Reservation struct {
	ID        int64  `json:"reservationId" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	RoomID    int64  `json:"roomId" db:"room_id"`
	Status    Status `json:"status" db:"status"`
	StartDate Date   `json:"startDate" db:"start_date"`
	EndDate   Date   `json:"endDate" db:"end_date"`
}

type Room struct {
	ID     int64 `json:"id" db:"id"`
	Number int64 `json:"number" db:"number"`
}

type User struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CreateReservationRequest struct {
	UserID    *int64 `json:"userId" validate:"required"`
	RoomID    *int64 `json:"roomId" validate:"required"`
	StartDate *Date  `json:"startDate" validate:"required,future"`
	EndDate   *Date  `json:"endDate" validate:"required,future"`
}

type UpdateReservationRequest struct {
	ReservationID *int64 `json:"reservationId" validate:"required"`
	StartDate     *Date  `json:"startDate" validate:"required,future"`
	EndDate       *Date  `json:"endDate" validate:"required,future"`
}

type RoomAvailabilityRequest struct {
	RoomID    *int64 `json:"roomId" validate:"required"`
	StartDate *Date  `json:"startDate" validate:"required,future"`
}

type ReservationResponse struct {
	ReservationID int64 `json:"reservationId"`
	UserID        int64 `json:"userId"`
	RoomID        int64 `json:"roomId"`
	StartDate     Date  `json:"startDate"`
	EndDate       Date  `json:"endDate"`
}

func NewReservationResponse(r Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ID,
		UserID:        r.UserID,
		RoomID:        r.RoomID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}

type RoomAvailability struct {
	IsAvailable               bool `json:"isAvailable"`
	ClosestAvailableStartDate Date `json:"closestAvailableStartDate"`
}
