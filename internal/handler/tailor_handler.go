package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/model"
	"tailorshop/internal/service"
)

// TailorHandler serves the tailor workspace.
type TailorHandler struct {
	bookings service.BookingService
}

// NewTailorHandler creates a new tailor handler.
func NewTailorHandler(bookings service.BookingService) *TailorHandler {
	return &TailorHandler{bookings: bookings}
}

// StatusRequest carries a new booking status.
type StatusRequest struct {
	Status model.BookingStatus `json:"status" validate:"required"`
}

// StatusOptionsResponse lists the statuses the caller may set.
type StatusOptionsResponse struct {
	Statuses []model.BookingStatus `json:"statuses"`
}

// ListAssigned godoc
// @Summary Bookings assigned to the caller
// @Tags tailor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Router /tailor/bookings [get]
func (h *TailorHandler) ListAssigned(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	list, err := h.bookings.ListAssigned(c.Request().Context(), a.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Actions godoc
// @Summary Statuses a tailor may set
// @Tags tailor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatusOptionsResponse
// @Router /tailor/actions [get]
func (h *TailorHandler) Actions(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusOptionsResponse{Statuses: model.TailorActions()})
}

// MeasurementFieldsResponse lists the measurement form fields in display order.
type MeasurementFieldsResponse struct {
	Fields []string `json:"fields"`
}

// MeasurementFields godoc
// @Summary Measurement form fields
// @Tags tailor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeasurementFieldsResponse
// @Router /tailor/measurement-fields [get]
func (h *TailorHandler) MeasurementFields(c echo.Context) error {
	return c.JSON(http.StatusOK, MeasurementFieldsResponse{Fields: model.MeasurementFields})
}

// UpdateStatus godoc
// @Summary Move an assigned job forward
// @Tags tailor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tailor/bookings/{id}/status [patch]
func (h *TailorHandler) UpdateStatus(c echo.Context) error {
	return updateStatus(c, h.bookings)
}

// UpdateMeasurements godoc
// @Summary Record measurements on an assigned job
// @Tags tailor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body MeasurementsRequest true "Measurements"
// @Success 200 {object} model.Booking
// @Failure 403 {object} errors.ErrorResponse
// @Router /tailor/bookings/{id}/measurements [put]
func (h *TailorHandler) UpdateMeasurements(c echo.Context) error {
	return updateBookingMeasurements(c, h.bookings)
}

func updateStatus(c echo.Context, svc service.BookingService) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func updateBookingMeasurements(c echo.Context, svc service.BookingService) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req MeasurementsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := svc.UpdateMeasurements(c.Request().Context(), c.Param("id"), req.Measurements, a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
