package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

//nolint:govet // fieldalignment: intentional layout for readability
type clientConfig struct {
	model       string
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// WithModel sets the model name. Defaults to "gpt-4o-mini".
func WithModel(model string) ClientOption {
	return func(c *clientConfig) { c.model = model }
}

// WithTemperature sets the sampling temperature. Defaults to 0.3.
func WithTemperature(t float64) ClientOption {
	return func(c *clientConfig) { c.temperature = t }
}

// WithTimeout sets the per-request timeout. Defaults to 30s.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) { c.timeout = d }
}

// WithClientLogger sets a custom logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) { c.logger = logger }
}

// NewClient creates a chat-completions analyzer. The endpoint is the full
// completions URL, e.g. "https://api.openai.com/v1/chat/completions".
func NewClient(endpoint, apiKey string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("analysis endpoint required")
	}

	cfg := &clientConfig{model: "gpt-4o-mini", temperature: 0.3, timeout: 30 * time.Second, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.timeout},
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       cfg.model,
		temperature: cfg.temperature,
		logger:      cfg.logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

//nolint:govet // fieldalignment: mirrors the wire format
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze sends the page content with its level instruction and parses the
// structured reply. Transport errors and unparseable replies both surface as
// errors so the caller can fall back to pattern extraction for this page.
func (c *Client) Analyze(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "user", Content: req.Instruction + "\n\nContent:\n" + req.Content},
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("marshal analysis request: %w", err)
	}

	c.logger.DebugContext(ctx, "calling analysis service", "model", c.model, "level", req.Level, "content_bytes", len(req.Content))

	reply, err := retry.DoWithData(
		func() (string, error) { return c.post(ctx, body) },
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(300*time.Millisecond),
		retry.MaxJitter(150*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			c.logger.DebugContext(ctx, "retrying analysis request", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return Response{}, err
	}

	return ParseReply(reply)
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // error ignored intentionally

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis service HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrMalformed)
	}
	return parsed.Choices[0].Message.Content, nil
}
