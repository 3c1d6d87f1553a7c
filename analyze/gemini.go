package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// Gemini analyzes pages through the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGemini creates a Gemini-backed analyzer.
func NewGemini(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, logger: logger}, nil
}

// Analyze sends the page content to Gemini and parses the structured reply.
func (g *Gemini) Analyze(ctx context.Context, req Request) (Response, error) {
	g.logger.DebugContext(ctx, "calling gemini", "model", g.model, "level", req.Level)

	contents := []*genai.Content{
		genai.NewContentFromText(req.Instruction+"\n\nContent:\n"+req.Content, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return Response{}, fmt.Errorf("%w: empty gemini reply", ErrMalformed)
	}
	return ParseReply(text)
}
