package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/model"
	"tailorshop/internal/service"
)

// BookingHandler serves customer-facing booking endpoints.
type BookingHandler struct {
	svc service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBookingRequest is the booking form.
type CreateBookingRequest struct {
	CustomerName    string                `json:"customerName" validate:"required"`
	Phone           string                `json:"phone" validate:"required"`
	Address         string                `json:"address"`
	ServiceType     model.ServiceType     `json:"serviceType" validate:"required"`
	AppointmentType model.AppointmentType `json:"appointmentType" validate:"required"`
	Date            string                `json:"date" validate:"required"`
	Notes           string                `json:"notes"`
}

// CreateBookingResponse returns the stored booking and the WhatsApp deep
// link the client should open.
type CreateBookingResponse struct {
	Booking     *model.Booking `json:"booking"`
	WhatsAppURL string         `json:"whatsappUrl"`
}

// LinkResponse wraps a URL.
type LinkResponse struct {
	URL string `json:"url"`
}

// ImagesResponse lists a booking's reference images.
type ImagesResponse struct {
	ReferenceImages []string `json:"referenceImages"`
}

// Create godoc
// @Summary Book an appointment
// @Description Guests may book without a token. Signed-in users must have a verified email.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking form"
// @Success 201 {object} CreateBookingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	var who *service.Actor
	if claims := Claims(c); claims != nil {
		who = &service.Actor{ID: claims.UserID, Role: claims.Role}
	}

	booking, link, err := h.svc.Create(c.Request().Context(), service.CreateBookingInput{
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		Address:         req.Address,
		ServiceType:     req.ServiceType,
		AppointmentType: req.AppointmentType,
		Date:            req.Date,
		Notes:           req.Notes,
	}, who)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreateBookingResponse{Booking: booking, WhatsAppURL: link})
}

// ListMine godoc
// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Router /bookings/mine [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListMine(c.Request().Context(), a.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} model.Booking
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	b, err := h.svc.Get(c.Request().Context(), c.Param("id"), a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// WhatsApp godoc
// @Summary WhatsApp deep link for a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} LinkResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id}/whatsapp [get]
func (h *BookingHandler) WhatsApp(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	link, err := h.svc.WhatsAppLink(c.Request().Context(), c.Param("id"), a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, LinkResponse{URL: link})
}

// UploadImage godoc
// @Summary Attach a reference image
// @Tags bookings
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param image formData file true "Image"
// @Success 201 {object} ImagesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bookings/{id}/images [post]
func (h *BookingHandler) UploadImage(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	up, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer up.Close()

	images, err := h.svc.AddReferenceImage(c.Request().Context(), c.Param("id"), up.Filename, up.ContentType, up.Reader(), a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, ImagesResponse{ReferenceImages: images})
}
