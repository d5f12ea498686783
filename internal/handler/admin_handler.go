package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tailorshop/internal/model"
	"tailorshop/internal/service"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	admin    service.AdminService
	bookings service.BookingService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, bookings service.BookingService) *AdminHandler {
	return &AdminHandler{admin: admin, bookings: bookings}
}

// AssignRequest names the tailor to hand a booking to.
type AssignRequest struct {
	TailorID string `json:"tailorId" validate:"required"`
}

// CostRequest sets a booking's price.
type CostRequest struct {
	Cost decimal.Decimal `json:"cost"`
}

// RoleRequest carries a new role.
type RoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// ListBookings godoc
// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter, or All"
// @Success 200 {array} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(c echo.Context) error {
	list, err := h.bookings.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateStatus godoc
// @Summary Set any booking status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/bookings/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	return updateStatus(c, h.bookings)
}

// Assign godoc
// @Summary Assign a booking to a tailor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body AssignRequest true "Tailor"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/bookings/{id}/assign [patch]
func (h *AdminHandler) Assign(c echo.Context) error {
	var req AssignRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := h.bookings.Assign(c.Request().Context(), c.Param("id"), req.TailorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// UpdateMeasurements godoc
// @Summary Record measurements on any booking
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body MeasurementsRequest true "Measurements"
// @Success 200 {object} model.Booking
// @Router /admin/bookings/{id}/measurements [put]
func (h *AdminHandler) UpdateMeasurements(c echo.Context) error {
	return updateBookingMeasurements(c, h.bookings)
}

// SetCost godoc
// @Summary Set a booking's cost
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body CostRequest true "Cost"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/bookings/{id}/cost [put]
func (h *AdminHandler) SetCost(c echo.Context) error {
	var req CostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	b, err := h.bookings.SetCost(c.Request().Context(), c.Param("id"), req.Cost)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Stats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary List users, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Promote or demote a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body RoleRequest true "Role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req RoleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.admin.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Tailors godoc
// @Summary Tailor roster with active load
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.TailorLoad
// @Router /admin/tailors [get]
func (h *AdminHandler) Tailors(c echo.Context) error {
	roster, err := h.admin.Roster(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, roster)
}

// TailorBookings godoc
// @Summary Bookings assigned to one tailor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tailor user ID"
// @Success 200 {array} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tailors/{id}/bookings [get]
func (h *AdminHandler) TailorBookings(c echo.Context) error {
	list, err := h.admin.TailorBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
