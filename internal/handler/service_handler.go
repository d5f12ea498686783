package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/service"
)

// ServiceHandler serves the services catalog.
type ServiceHandler struct {
	catalog service.CatalogService
}

// NewServiceHandler creates a new catalog handler.
func NewServiceHandler(catalog service.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// ServiceRequest is a catalog entry payload.
type ServiceRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Desc     string `json:"desc"`
	Img      string `json:"img"`
	Category string `json:"category"`
}

func (r ServiceRequest) input() service.ServiceInput {
	return service.ServiceInput{Name: r.Name, Price: r.Price, Desc: r.Desc, Img: r.Img, Category: r.Category}
}

// List godoc
// @Summary List catalog services
// @Tags services
// @Produce json
// @Success 200 {array} model.Service
// @Router /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	list, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Add a catalog service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ServiceRequest true "Service"
// @Success 201 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Router /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req ServiceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	svc, err := h.catalog.Create(c.Request().Context(), req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, svc)
}

// Update godoc
// @Summary Edit a catalog service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body ServiceRequest true "Service"
// @Success 200 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	var req ServiceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	svc, err := h.catalog.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Delete godoc
// @Summary Remove a catalog service
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload a catalog image
// @Tags services
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image"
// @Success 201 {object} LinkResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /services/images [post]
func (h *ServiceHandler) UploadImage(c echo.Context) error {
	up, err := formImage(c, "image")
	if err != nil {
		return err
	}
	defer up.Close()

	url, err := h.catalog.UploadImage(c.Request().Context(), up.Filename, up.ContentType, up.Reader())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, LinkResponse{URL: url})
}
