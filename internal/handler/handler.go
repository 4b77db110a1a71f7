package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cancunbooking/booking-service/internal/errs"
	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/pkg/kafka"
	"github.com/cancunbooking/booking-service/pkg/validate"
)

type Handler struct {
	reservationSvc ReservationService
	enqueuer       Enqueuer
	log            *zap.Logger
}

func New(reservationSvc ReservationService, enqueuer Enqueuer, log *zap.Logger) *Handler {
	h := &Handler{
		reservationSvc: reservationSvc,
		enqueuer:       enqueuer,
		log:            log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig(h.log)),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	reservation := api.Group("/reservation")
	reservation.POST("/new", h.CreateReservation)
	reservation.POST("/update", h.UpdateReservation)
	reservation.POST("/check-availability", h.CheckAvailability)
	reservation.POST("/cancel/:reservationId", h.CancelReservation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, validate.Fields(err))
	}

	ctx := c.Request().Context()
	rsv, err := h.reservationSvc.CreateReservation(ctx, *req.UserID, *req.RoomID, *req.StartDate, *req.EndDate)
	if err != nil {
		return h.httpError(err)
	}
	h.publishEvent(kafka.EventReservationCreated, rsv)

	return c.JSON(http.StatusCreated, model.NewReservationResponse(rsv))
}

func (h *Handler) UpdateReservation(c echo.Context) error {
	var req model.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, validate.Fields(err))
	}

	ctx := c.Request().Context()
	rsv, err := h.reservationSvc.UpdateReservation(ctx, *req.ReservationID, *req.StartDate, *req.EndDate)
	if err != nil {
		return h.httpError(err)
	}
	h.publishEvent(kafka.EventReservationUpdated, rsv)

	return c.JSON(http.StatusOK, model.NewReservationResponse(rsv))
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	var req model.RoomAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, validate.Fields(err))
	}

	ctx := c.Request().Context()
	availability, err := h.reservationSvc.GetRoomAvailability(ctx, *req.RoomID, *req.StartDate)
	if err != nil {
		return h.httpError(err)
	}

	return c.JSON(http.StatusOK, availability)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	reservationID, err := strconv.ParseInt(c.Param("reservationId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationId must be an integer")
	}

	ctx := c.Request().Context()
	rsv, err := h.reservationSvc.CancelReservation(ctx, reservationID)
	if err != nil {
		return h.httpError(err)
	}
	h.publishEvent(kafka.EventReservationCancelled, rsv)

	return c.NoContent(http.StatusNoContent)
}

// httpError maps business-rule violations to 400 with the rule's message;
// anything else is an infrastructure failure.
func (h *Handler) httpError(err error) *echo.HTTPError {
	if errs.IsBusinessRule(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// publishEvent is best-effort: a broker failure is logged and never fails
// the request that already committed.
func (h *Handler) publishEvent(eventType kafka.EventType, rsv model.Reservation) {
	event := newReservationEvent(eventType, rsv, time.Now().UTC())
	if err := h.enqueuer.Enqueue(kafka.ReservationEventsTopic, event); err != nil {
		h.log.Error("enqueue reservation event",
			zap.String("type", string(eventType)),
			zap.Int64("reservationId", rsv.ID),
			zap.Error(err),
		)
	}
}
