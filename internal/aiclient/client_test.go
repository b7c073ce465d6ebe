package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaha-be/internal/models"
)

func TestGenerateBudgetSuggestions(t *testing.T) {
	var got models.BudgetSuggestionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/budget-suggestions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestions":["💐 Save on flowers","🍰 Choose a weekday"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, zerolog.Nop())
	suggestions := c.GenerateBudgetSuggestions(context.Background(), 50000, 150, "Austin", []string{"catering"})

	assert.Equal(t, []string{"💐 Save on flowers", "🍰 Choose a weekday"}, suggestions)
	assert.Equal(t, models.BudgetSuggestionsRequest{Budget: 50000, GuestCount: 150, City: "Austin", Priorities: []string{"catering"}}, got)
}

func TestGenerateBudgetSuggestionsNeverFails(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"AI service not configured"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "missing suggestions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(srv.URL, time.Second, zerolog.Nop())
			assert.Equal(t, []string{}, c.GenerateBudgetSuggestions(context.Background(), 1000, 10, "", nil))
		})
	}
}

func TestGenerateBudgetSuggestionsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, zerolog.Nop())
	assert.Equal(t, []string{}, c.GenerateBudgetSuggestions(context.Background(), 1000, 10, "", nil))
}
