package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWithoutKeyMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "m"}, zerolog.Nop())
	_, err := c.Complete(context.Background(), ChatRequest{})

	assert.ErrorAs(t, err, &ConfigurationError{})
	assert.False(t, c.Configured())
	assert.Zero(t, calls.Load())
}

func TestCompleteSendsRequest(t *testing.T) {
	var got ChatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "key", Endpoint: srv.URL, Model: "llama", Timeout: time.Second}, zerolog.Nop())
	raw, err := c.Complete(context.Background(), ChatRequest{
		Messages:    []Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}},
		Temperature: 0.6,
		MaxTokens:   800,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key", auth)
	assert.Equal(t, "llama", got.Model)
	assert.Equal(t, 0.6, got.Temperature)
	assert.Equal(t, 800, got.MaxTokens)
	assert.Len(t, got.Messages, 2)

	content, err := ContentOf(raw)
	require.NoError(t, err)
	assert.Equal(t, "hi", content)
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "key", Endpoint: srv.URL}, zerolog.Nop())
	_, err := c.Complete(context.Background(), ChatRequest{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "rate limited")
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "key", Endpoint: srv.URL, Timeout: 20 * time.Millisecond}, zerolog.Nop())
	_, err := c.Complete(context.Background(), ChatRequest{})
	assert.Error(t, err)
}

func TestContentOf(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "message content", raw: `{"choices":[{"message":{"content":"a"}}]}`, want: "a"},
		{name: "legacy text", raw: `{"choices":[{"text":"b"}]}`, want: "b"},
		{name: "no choices", raw: `{"choices":[]}`, want: ""},
		{name: "not json", raw: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContentOf([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
