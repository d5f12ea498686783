package service

import (
	"context"
	"log/slog"
	"strings"

	"tailorshop/internal/advisor"
	"tailorshop/internal/metrics"
)

// Canned replies for the style advisor.
const (
	AdviceMissingKey  = "API Key is missing. Please check configuration."
	AdviceEmptyReply  = "I apologize, I am currently stitching another thought. Please ask again."
	AdviceUnavailable = "Our style consultant is currently unavailable. Please try again later."
)

// AdviceService answers style questions. It never returns an error; failures
// become one of the canned replies.
type AdviceService interface {
	Ask(ctx context.Context, query string) string
}

type adviceService struct {
	gen advisor.Generator
}

// NewAdviceService creates the advisor. A nil generator means no API key.
func NewAdviceService(gen advisor.Generator) AdviceService {
	return &adviceService{gen: gen}
}

func (s *adviceService) Ask(ctx context.Context, query string) string {
	if s.gen == nil {
		metrics.AdviceRequests.WithLabelValues("missing_key").Inc()
		return AdviceMissingKey
	}
	text, err := s.gen.Generate(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "style advice failed", "error", err)
		metrics.AdviceRequests.WithLabelValues("error").Inc()
		return AdviceUnavailable
	}
	if strings.TrimSpace(text) == "" {
		metrics.AdviceRequests.WithLabelValues("empty").Inc()
		return AdviceEmptyReply
	}
	metrics.AdviceRequests.WithLabelValues("ok").Inc()
	return text
}
