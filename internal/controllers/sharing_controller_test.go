package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type stubSharingService struct {
	links   map[string]*entities.ShareLink
	wedding *entities.Wedding
}

func (s *stubSharingService) Generate(ctx context.Context, userID string, level entities.AccessLevel) (*models.ShareLinkResponse, error) {
	if level == "" {
		level = entities.AccessView
	}
	token := "tok" + userID
	s.links[token] = &entities.ShareLink{Token: token, UserID: userID, AccessLevel: level}
	return &models.ShareLinkResponse{ShareLink: s.ShareURL(token), ShareToken: token, AccessLevel: string(level)}, nil
}

func (s *stubSharingService) List(ctx context.Context, userID string) ([]*entities.ShareLink, error) {
	var out []*entities.ShareLink
	for _, l := range s.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubSharingService) Revoke(ctx context.Context, userID, token string) error {
	l, ok := s.links[token]
	if !ok || l.UserID != userID {
		return service.ErrShareLinkNotFound
	}
	delete(s.links, token)
	return nil
}

func (s *stubSharingService) Lookup(ctx context.Context, token string) (*entities.ShareLink, error) {
	l, ok := s.links[token]
	if !ok {
		return nil, service.ErrShareLinkNotFound
	}
	if l.Expired(time.Now()) {
		return nil, service.ErrShareLinkExpired
	}
	return l, nil
}

func (s *stubSharingService) Resolve(ctx context.Context, token string) (*models.SharedWeddingResponse, error) {
	l, err := s.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &models.SharedWeddingResponse{AccessLevel: string(l.AccessLevel), CoupleName: "Couple", Wedding: s.wedding}, nil
}

func (s *stubSharingService) ShareURL(token string) string {
	return "https://vivaha.example/shared/" + token
}

func sharingRouter(svc service.SharingService, userID string) http.Handler {
	router := newRouter(userID)
	sc := NewSharingController(svc)
	qc := NewQRCodeController(svc)
	router.POST("/api/sharing/generate", sc.Generate)
	router.GET("/api/sharing/links", sc.List)
	router.DELETE("/api/sharing/:token", sc.Revoke)
	router.GET("/api/sharing/:token/qrcode", qc.GenerateQRCode)
	router.GET("/api/sharing/access/:token", sc.Shared)
	router.GET("/api/shared/:token", sc.Shared)
	return router
}

func TestSharingFlow(t *testing.T) {
	svc := &stubSharingService{
		links:   map[string]*entities.ShareLink{},
		wedding: &entities.Wedding{ID: "w1", UserID: "u1", Venue: "Rose Garden"},
	}
	router := sharingRouter(svc, "u1")

	w := perform(t, router, http.MethodPost, "/api/sharing/generate", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var link models.ShareLinkResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &link))
	assert.Equal(t, "view", link.AccessLevel)
	assert.Equal(t, "https://vivaha.example/shared/toku1", link.ShareLink)

	for _, path := range []string{"/api/sharing/access/", "/api/shared/"} {
		w = perform(t, router, http.MethodGet, path+link.ShareToken, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var shared models.SharedWeddingResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &shared))
		assert.Equal(t, "view", shared.AccessLevel)
		assert.Equal(t, "Couple", shared.CoupleName)
		require.NotNil(t, shared.Wedding)
		assert.Equal(t, "Rose Garden", shared.Wedding.Venue)
	}

	w = perform(t, router, http.MethodDelete, "/api/sharing/"+link.ShareToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(t, router, http.MethodGet, "/api/sharing/access/"+link.ShareToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharedLinkErrors(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	svc := &stubSharingService{links: map[string]*entities.ShareLink{
		"old": {Token: "old", UserID: "u1", AccessLevel: entities.AccessEdit, ExpiresAt: &expired},
	}}
	router := sharingRouter(svc, "")

	tests := []struct {
		name    string
		token   string
		status  int
		message string
	}{
		{name: "expired", token: "old", status: http.StatusForbidden, message: "share link has expired"},
		{name: "unknown", token: "missing", status: http.StatusNotFound, message: "invalid or expired share link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(t, router, http.MethodGet, "/api/sharing/access/"+tt.token, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeEnvelope(t, w).Error)
		})
	}
}

func TestGenerateRejectsUnknownAccessLevel(t *testing.T) {
	router := sharingRouter(&stubSharingService{links: map[string]*entities.ShareLink{}}, "u1")

	w := perform(t, router, http.MethodPost, "/api/sharing/generate", models.CreateShareLinkRequest{AccessLevel: "owner"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQRCode(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	svc := &stubSharingService{links: map[string]*entities.ShareLink{
		"live": {Token: "live", UserID: "u1"},
		"old":  {Token: "old", UserID: "u1", ExpiresAt: &expired},
	}}
	router := sharingRouter(svc, "")

	w := perform(t, router, http.MethodGet, "/api/sharing/live/qrcode", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, qrCodeSize, img.Bounds().Dx())

	w = perform(t, router, http.MethodGet, "/api/sharing/old/qrcode", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = perform(t, router, http.MethodGet, "/api/sharing/missing/qrcode", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubAdminService struct {
	users []*entities.User
}

func (s *stubAdminService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.users, nil
}

func (s *stubAdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	for _, u := range s.users {
		if u.ID == userID {
			return u.IsAdmin, nil
		}
	}
	return false, nil
}

func TestAdminListUsers(t *testing.T) {
	router := newRouter("admin")
	router.GET("/api/admin/users", NewAdminController(&stubAdminService{users: []*entities.User{
		{ID: "u1", Email: "a@example.com", PasswordHash: "secret-hash"},
		{ID: "u2", Email: "b@example.com"},
	}}).ListUsers)

	w := perform(t, router, http.MethodGet, "/api/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []entities.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &users))
	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}
