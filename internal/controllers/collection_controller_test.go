package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type stubGuestService struct {
	guests []entities.Guest
	next   int
}

func (s *stubGuestService) List(ctx context.Context, userID string) ([]entities.Guest, error) {
	return s.guests, nil
}

func (s *stubGuestService) Create(ctx context.Context, userID string, item entities.Guest) (*entities.Guest, error) {
	s.next++
	item.ID = fmt.Sprintf("g%d", s.next)
	s.guests = append(s.guests, item)
	return &item, nil
}

func (s *stubGuestService) Update(ctx context.Context, userID, id string, item entities.Guest) (*entities.Guest, error) {
	i := slices.IndexFunc(s.guests, func(g entities.Guest) bool { return g.ID == id })
	if i < 0 {
		return nil, service.ErrItemNotFound
	}
	item.ID = id
	s.guests[i] = item
	return &item, nil
}

func (s *stubGuestService) Delete(ctx context.Context, userID, id string) error {
	i := slices.IndexFunc(s.guests, func(g entities.Guest) bool { return g.ID == id })
	if i < 0 {
		return service.ErrItemNotFound
	}
	s.guests = slices.Delete(s.guests, i, i+1)
	return nil
}

func TestCollectionController(t *testing.T) {
	svc := &stubGuestService{}
	router := newRouter("u1")
	NewCollectionController[entities.Guest](svc, "Guest").Mount(router.Group("/api/guests"))

	w := perform(t, router, http.MethodPost, "/api/guests", entities.Guest{Name: "Asha", RSVPStatus: entities.RSVPAccepted})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Guest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.Equal(t, "g1", created.ID)

	w = perform(t, router, http.MethodPut, "/api/guests/g1", entities.Guest{Name: "Asha R", PlusOne: true})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(t, router, http.MethodGet, "/api/guests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []entities.Guest
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Asha R", list[0].Name)
	assert.True(t, list[0].PlusOne)

	w = perform(t, router, http.MethodDelete, "/api/guests/g1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Guest deleted successfully", decodeEnvelope(t, w).Message)
	assert.Empty(t, svc.guests)
}

func TestCollectionControllerErrors(t *testing.T) {
	svc := &stubGuestService{}
	router := newRouter("u1")
	NewCollectionController[entities.Guest](svc, "Guest").Mount(router.Group("/api/guests"))

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{"missing name", http.MethodPost, "/api/guests", entities.Guest{Email: "a@example.com"}, http.StatusBadRequest},
		{"bad rsvp", http.MethodPost, "/api/guests", `{"name":"A","rsvpStatus":"maybe"}`, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/api/guests/nope", entities.Guest{Name: "A"}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/guests/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, decodeEnvelope(t, w).Success)
		})
	}
}

type stubWeddingService struct {
	wedding *entities.Wedding
	err     error
}

func (s *stubWeddingService) Get(ctx context.Context, userID string) (*entities.Wedding, error) {
	return s.wedding, s.err
}

func (s *stubWeddingService) UpdateDetails(ctx context.Context, userID string, req *models.UpdateWeddingRequest) (*entities.Wedding, error) {
	if req.Venue != nil {
		s.wedding.Venue = *req.Venue
	}
	if req.TotalBudget != nil {
		s.wedding.TotalBudget = *req.TotalBudget
	}
	return s.wedding, s.err
}

func (s *stubWeddingService) ApplyOnboarding(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.Wedding, error) {
	return s.wedding, s.err
}

func (s *stubWeddingService) Delete(ctx context.Context, userID string) error {
	return s.err
}

func (s *stubWeddingService) Summary(ctx context.Context, userID string) (*models.WeddingSummary, error) {
	return &models.WeddingSummary{TotalBudget: s.wedding.TotalBudget, GuestCount: len(s.wedding.Guests)}, s.err
}

func weddingRouter(svc service.WeddingService) http.Handler {
	router := newRouter("u1")
	wc := NewWeddingController(svc)
	router.GET("/api/wedding", wc.Get)
	router.PUT("/api/wedding", wc.Update)
	router.DELETE("/api/wedding", wc.Delete)
	router.GET("/api/wedding/summary", wc.Summary)
	return router
}

func TestWeddingController(t *testing.T) {
	svc := &stubWeddingService{wedding: &entities.Wedding{ID: "w1", UserID: "u1", Guests: []entities.Guest{{ID: "g1"}}}}
	router := weddingRouter(svc)

	w := perform(t, router, http.MethodPut, "/api/wedding", `{"venue":"Lakeside Hall","totalBudget":30000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var wedding entities.Wedding
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &wedding))
	assert.Equal(t, "Lakeside Hall", wedding.Venue)

	w = perform(t, router, http.MethodGet, "/api/wedding/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.WeddingSummary
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &summary))
	assert.Equal(t, 30000.0, summary.TotalBudget)
	assert.Equal(t, 1, summary.GuestCount)

	w = perform(t, router, http.MethodPut, "/api/wedding", `{"totalBudget":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeddingDeleteMissing(t *testing.T) {
	router := weddingRouter(&stubWeddingService{err: service.ErrItemNotFound})

	w := perform(t, router, http.MethodDelete, "/api/wedding", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeddingInternalErrorIsGeneric(t *testing.T) {
	router := weddingRouter(&stubWeddingService{err: fmt.Errorf("failed to load wedding: %w", context.Canceled)})

	w := perform(t, router, http.MethodGet, "/api/wedding", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeEnvelope(t, w).Error)
}
