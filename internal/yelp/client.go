package yelp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultEndpoint = "https://api.yelp.com/v3/businesses/search"

	searchLimit  = 20
	searchSortBy = "rating"
)

// ErrNotConfigured means no API key is set. No request is made.
var ErrNotConfigured = errors.New("yelp: api key not configured")

// categoryTerms maps the vendor categories the client offers to Yelp search
// terms. Anything else searches plain "wedding".
var categoryTerms = map[string]string{
	"Photography": "photographers",
	"Venue":       "venues,eventspaces",
	"DJ":          "djs",
	"Officiant":   "officiants",
	"Catering":    "caterers,catering",
	"Flowers":     "florists",
	"Planning":    "wedding_planning,eventplanners",
}

type Query struct {
	City     string
	State    string
	Category string
}

// Term is the Yelp search term for the query's category.
func (q Query) Term() string {
	term, ok := categoryTerms[q.Category]
	if !ok {
		term = "wedding"
	}
	return "wedding " + term
}

// Location is "city, state" as Yelp expects it.
func (q Query) Location() string {
	return q.City + ", " + q.State
}

type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Client calls the Yelp Fusion business search. One call per Search, no
// retries.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search returns Yelp's raw JSON body on a 2xx answer.
func (c *Client) Search(ctx context.Context, q Query) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("location", q.Location())
	params.Set("term", q.Term())
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("sort_by", searchSortBy)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
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
			Msg("yelp returned an error")
		return nil, fmt.Errorf("yelp: status %d", resp.StatusCode)
	}

	c.logger.Debug().
		Str("location", q.Location()).
		Dur("latency", time.Since(start)).
		Msg("vendor search completed")
	return body, nil
}
