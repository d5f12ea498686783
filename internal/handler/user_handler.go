package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/model"
	"tailorshop/internal/service"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileRequest carries editable profile fields.
type ProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

// MeasurementsRequest carries a measurement set.
type MeasurementsRequest struct {
	Measurements model.Measurements `json:"measurements" validate:"required"`
}

// GetProfile godoc
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetProfile(c.Request().Context(), a.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update own name and phone
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req ProfileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), a.ID, req.Name, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMeasurements godoc
// @Summary Save own measurements
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MeasurementsRequest true "Measurements"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /me/measurements [put]
func (h *UserHandler) UpdateMeasurements(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req MeasurementsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateMeasurements(c.Request().Context(), a.ID, req.Measurements)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
