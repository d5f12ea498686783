// Package advisor wraps the generative text model behind style advice.
package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"tailorshop/internal/config"
)

// Generator answers a single style question.
type Generator interface {
	Generate(ctx context.Context, query string) (string, error)
}

// SystemInstruction returns the persona prompt for shopName.
func SystemInstruction(shopName string) string {
	return fmt.Sprintf(`You are the Master Tailor and Stylist at '%s'.
You give sophisticated, practical advice on men's fashion, fabric choices, and color coordination.
Keep answers concise (under 100 words), polite, and professional.
Always end by suggesting they book an appointment for a personalized consultation.`, shopName)
}

// GeminiGenerator calls the Gemini API once per question.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	instruction string
}

// NewGeminiGenerator creates a Gemini client. It returns (nil, nil) when no
// API key is configured.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, shopName string) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		instruction: SystemInstruction(shopName),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, query string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(query), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(g.instruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
