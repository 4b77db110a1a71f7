package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/handler"
	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/pkg/kafka"
	"github.com/cancunbooking/booking-service/pkg/validate"

	service_mocks "github.com/cancunbooking/booking-service/internal/handler/mocks"
)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func newTestRouter(t *testing.T) (*echo.Echo, *service_mocks.MockReservationService, *service_mocks.MockEnqueuer) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockReservationService(c)
	enq := service_mocks.NewMockEnqueuer(c)
	log := zap.NewExample().Named("test")
	h := handler.New(svc, enq, log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/api/v1/reservation/new", h.CreateReservation)
	e.POST("/api/v1/reservation/update", h.UpdateReservation)
	e.POST("/api/v1/reservation/check-availability", h.CheckAvailability)
	e.POST("/api/v1/reservation/cancel/:reservationId", h.CancelReservation)
	return e, svc, enq
}

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer)

	// request dates sit far in the future so the field-level future rule,
	// which runs against the wall clock, stays out of the way
	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CreateReservation(context.Background(), int64(1), int64(1), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{
						ID:        7,
						UserID:    1,
						RoomID:    1,
						Status:    model.StatusActive,
						StartDate: date(2030, time.January, 10),
						EndDate:   date(2030, time.January, 12),
					}, nil)
				q.EXPECT().
					Enqueue(kafka.ReservationEventsTopic, gomock.Any()).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reservationId":7,"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			},
		},
		{
			name: "ok even when the event broker is down",
			body: `{"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CreateReservation(context.Background(), int64(1), int64(1), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{
						ID:        7,
						UserID:    1,
						RoomID:    1,
						Status:    model.StatusActive,
						StartDate: date(2030, time.January, 10),
						EndDate:   date(2030, time.January, 12),
					}, nil)
				q.EXPECT().
					Enqueue(kafka.ReservationEventsTopic, gomock.Any()).
					Return(errors.New("broker unreachable"))
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reservationId":7,"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			},
		},
		{
			name:         "err. all fields missing",
			body:         `{}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"errors":[{"field":"userId","message":"User id cannot be null"},{"field":"roomId","message":"Room id cannot be null"},{"field":"startDate","message":"Start date cannot be null"},{"field":"endDate","message":"End date cannot be null"}]}`,
			},
		},
		{
			name:         "err. start date in the past",
			body:         `{"userId":1,"roomId":1,"startDate":"2020-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"errors":[{"field":"startDate","message":"Start date has to be in the future"}]}`,
			},
		},
		{
			name: "err. room already reserved",
			body: `{"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CreateReservation(context.Background(), int64(1), int64(1), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{}, errs.ErrRoomUnavailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"room is already reserved in the provided period"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"userId":1,"roomId":1,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CreateReservation(context.Background(), int64(1), int64(1), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc, enq := newTestRouter(t)
			tt.mockBehavior(svc, enq)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservation/new", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_UpdateReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"reservationId":5,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					UpdateReservation(context.Background(), int64(5), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{
						ID:        5,
						UserID:    1,
						RoomID:    2,
						Status:    model.StatusActive,
						StartDate: date(2030, time.January, 10),
						EndDate:   date(2030, time.January, 12),
					}, nil)
				q.EXPECT().
					Enqueue(kafka.ReservationEventsTopic, gomock.Any()).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"reservationId":5,"userId":1,"roomId":2,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			},
		},
		{
			name: "err. reservation not found",
			body: `{"reservationId":99,"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					UpdateReservation(context.Background(), int64(99), date(2030, time.January, 10), date(2030, time.January, 12)).
					Return(model.Reservation{}, errs.ErrReservationNotFound)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no reservation found with the given id"}`,
			},
		},
		{
			name:         "err. reservation id missing",
			body:         `{"startDate":"2030-01-10","endDate":"2030-01-12"}`,
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"errors":[{"field":"reservationId","message":"Reservation id cannot be null"}]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc, enq := newTestRouter(t)
			tt.mockBehavior(svc, enq)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservation/update", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CheckAvailability(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok. room available",
			body: `{"roomId":1,"startDate":"2030-01-16"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetRoomAvailability(context.Background(), int64(1), date(2030, time.January, 16)).
					Return(model.RoomAvailability{
						IsAvailable:               true,
						ClosestAvailableStartDate: date(2030, time.January, 16),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"isAvailable":true,"closestAvailableStartDate":"2030-01-16"}`,
			},
		},
		{
			name: "ok. room occupied",
			body: `{"roomId":1,"startDate":"2030-01-10"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetRoomAvailability(context.Background(), int64(1), date(2030, time.January, 10)).
					Return(model.RoomAvailability{
						IsAvailable:               false,
						ClosestAvailableStartDate: date(2030, time.January, 16),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"isAvailable":false,"closestAvailableStartDate":"2030-01-16"}`,
			},
		},
		{
			name: "err. unknown room",
			body: `{"roomId":42,"startDate":"2030-01-10"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetRoomAvailability(context.Background(), int64(42), date(2030, time.January, 10)).
					Return(model.RoomAvailability{}, errs.ErrRoomNotFound)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no room found with the provided id"}`,
			},
		},
		{
			name:         "err. room id missing",
			body:         `{"startDate":"2030-01-10"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"errors":[{"field":"roomId","message":"Room id cannot be null"}]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc, _ := newTestRouter(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservation/check-availability", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CancelReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer)

	var tests = []struct {
		name          string
		reservationID string
		mockBehavior  mockBehavior
		response      response
	}{
		{
			name:          "ok",
			reservationID: "5",
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CancelReservation(context.Background(), int64(5)).
					Return(model.Reservation{
						ID:     5,
						UserID: 1,
						RoomID: 2,
						Status: model.StatusCancelled,
					}, nil)
				q.EXPECT().
					Enqueue(kafka.ReservationEventsTopic, gomock.Any()).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusNoContent,
				expectedBody: ``,
			},
		},
		{
			name:          "err. reservation not active",
			reservationID: "5",
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CancelReservation(context.Background(), int64(5)).
					Return(model.Reservation{}, errs.ErrNotActive)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"reservation must be active"}`,
			},
		},
		{
			name:          "err. reservation not found",
			reservationID: "99",
			mockBehavior: func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {
				r.EXPECT().
					CancelReservation(context.Background(), int64(99)).
					Return(model.Reservation{}, errs.ErrReservationNotFound)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no reservation found with the given id"}`,
			},
		},
		{
			name:          "err. non-numeric id",
			reservationID: "abc",
			mockBehavior:  func(r *service_mocks.MockReservationService, q *service_mocks.MockEnqueuer) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"reservationId must be an integer"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc, enq := newTestRouter(t)
			tt.mockBehavior(svc, enq)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservation/cancel/"+tt.reservationID, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
