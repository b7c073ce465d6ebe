// Package aiclient calls the Vivaha AI endpoints the way the web client does.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vivaha-be/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GenerateBudgetSuggestions never fails. Transport errors, non-2xx answers
// and malformed bodies are logged and yield an empty list.
func (c *Client) GenerateBudgetSuggestions(ctx context.Context, budget float64, guestCount int, city string, priorities []string) []string {
	suggestions, err := c.budgetSuggestions(ctx, &models.BudgetSuggestionsRequest{
		Budget:     budget,
		GuestCount: guestCount,
		City:       city,
		Priorities: priorities,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to get AI budget suggestions")
		return []string{}
	}
	return suggestions
}

func (c *Client) budgetSuggestions(ctx context.Context, body *models.BudgetSuggestionsRequest) ([]string, error) {
	if body.Priorities == nil {
		body.Priorities = []string{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/budget-suggestions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out models.BudgetSuggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Suggestions == nil {
		return []string{}, nil
	}
	return out.Suggestions, nil
}
