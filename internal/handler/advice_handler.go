package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tailorshop/internal/service"
)

// AdviceHandler serves the style advisor.
type AdviceHandler struct {
	advice service.AdviceService
}

// NewAdviceHandler creates a new advice handler.
func NewAdviceHandler(advice service.AdviceService) *AdviceHandler {
	return &AdviceHandler{advice: advice}
}

// AdviceRequest is a free-text style question.
type AdviceRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// AdviceResponse is the advisor's answer.
type AdviceResponse struct {
	Reply string `json:"reply"`
}

// Ask godoc
// @Summary Ask the style advisor
// @Description Always answers 200; outages produce a canned reply.
// @Tags advice
// @Accept json
// @Produce json
// @Param request body AdviceRequest true "Question"
// @Success 200 {object} AdviceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /advice [post]
func (h *AdviceHandler) Ask(c echo.Context) error {
	var req AdviceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AdviceResponse{Reply: h.advice.Ask(c.Request().Context(), req.Query)})
}
