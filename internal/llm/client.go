package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrMalformedResponse is returned by ContentOf when the provider body is not
// a chat-completion document.
var ErrMalformedResponse = errors.New("llm: malformed provider response")

// ConfigurationError means no provider credential is configured. No network
// call is made when it is returned.
type ConfigurationError struct{}

func (ConfigurationError) Error() string { return "AI service not configured" }

// UpstreamError is a non-2xx answer from the provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: provider returned status %d", e.StatusCode)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-compatible chat-completion request body. Model is
// filled in by the client.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Config struct {
	APIKey   string
	Endpoint string // full chat-completions URL
	Model    string
	Timeout  time.Duration
}

// Client talks to an OpenAI-compatible chat-completion endpoint (Groq by
// default). One call per Complete, no retries.
type Client struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends req and returns the raw provider body on a 2xx answer.
func (c *Client) Complete(ctx context.Context, req ChatRequest) ([]byte, error) {
	if !c.Configured() {
		return nil, ConfigurationError{}
	}

	req.Model = c.model
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("provider returned an error")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug().
		Str("model", c.model).
		Dur("latency", time.Since(start)).
		Int("response_len", len(body)).
		Msg("completion received")
	return body, nil
}

type completion struct {
	Choices []struct {
		Message *Message `json:"message"`
		Text    string   `json:"text"`
	} `json:"choices"`
}

// ContentOf extracts the first choice's text from a chat-completion body,
// falling back to the legacy "text" field. A valid document without choices
// yields "".
func ContentOf(raw []byte) (string, error) {
	var doc completion
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(doc.Choices) == 0 {
		return "", nil
	}
	first := doc.Choices[0]
	if first.Message != nil && first.Message.Content != "" {
		return first.Message.Content, nil
	}
	return first.Text, nil
}
