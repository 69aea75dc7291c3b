package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/ports"
)

type BookingHandler struct {
	bookingService ports.BookingService
}

func NewBookingHandler(bookingService ports.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type createBookingRequest struct {
	CheckInDate  time.Time `json:"checkInDate"  validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required,gtfield=CheckInDate"`
	UserID       int64     `json:"userId"       validate:"gte=0"`
	PropertyID   int64     `json:"propertyId"   validate:"required,gt=0"`
}

type updateBookingRequest struct {
	CheckInDate  time.Time `json:"checkInDate"  validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required,gtfield=CheckInDate"`
}

// List returns all bookings.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookingService.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get returns one booking.
//
// @Summary      Get booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  domain.Booking
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.GetBooking(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Create books a property. userId defaults to the caller.
//
// @Summary      Create booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Stay"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.bookingService.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		UserID:       req.UserID,
		PropertyID:   req.PropertyID,
		Caller:       caller,
	})
	if err != nil {
		return err
	}

	metrics.BookingOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, booking)
}

// Update replaces the stay dates of a booking.
//
// @Summary      Update booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Booking ID"
// @Param        body  body      updateBookingRequest  true  "New dates"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.bookingService.UpdateBooking(c.Request().Context(), ports.UpdateBookingInput{
		ID:           id,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	if err != nil {
		return err
	}

	metrics.BookingOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, booking)
}

// Delete removes a booking.
//
// @Summary      Delete booking
// @Tags         bookings
// @Security     BearerAuth
// @Param        id   path  int  true  "Booking ID"
// @Success      204
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.bookingService.DeleteBooking(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.BookingOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
