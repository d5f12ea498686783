package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/errors"
	"tailorshop/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seeder  service.SeedService
	catalog service.CatalogService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder service.SeedService, catalog service.CatalogService) *SeedHandler {
	return &SeedHandler{seeder: seeder, catalog: catalog}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string              `json:"message"`
	Result  *service.SeedResult `json:"result"`
}

// Seed godoc
// @Summary Generate demo data
// @Description Creates tailors, customers, catalog services and bookings. Every account uses the password "password123".
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	res, err := h.seeder.Seed(c.Request().Context())
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "seed failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to seed data",
			Code:  "SEED_FAILED",
		})
	}
	h.catalog.Invalidate(c.Request().Context())
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "Demo data seeded successfully",
		Result:  res,
	})
}
