package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/repository"
)

// fakeWeddingRepo stores JSON copies so callers never share memory with the
// store, like the real JSONB column.
type fakeWeddingRepo struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
}

func newFakeWeddingRepo() *fakeWeddingRepo {
	return &fakeWeddingRepo{docs: map[string][]byte{}}
}

func (r *fakeWeddingRepo) FindByUserID(_ context.Context, userID string) (*entities.Wedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var w entities.Wedding
	if err := json.Unmarshal(doc, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *fakeWeddingRepo) CreateIfAbsent(ctx context.Context, w *entities.Wedding) (*entities.Wedding, error) {
	r.mu.Lock()
	if _, ok := r.docs[w.UserID]; !ok {
		doc, _ := json.Marshal(w)
		r.docs[w.UserID] = doc
	}
	r.mu.Unlock()
	return r.FindByUserID(ctx, w.UserID)
}

func (r *fakeWeddingRepo) Save(_ context.Context, w *entities.Wedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[w.UserID]; !ok {
		return repository.ErrNotFound
	}
	doc, err := json.Marshal(w)
	if err != nil {
		return err
	}
	r.docs[w.UserID] = doc
	r.saves++
	return nil
}

func (r *fakeWeddingRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, userID)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entities.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, email, passwordHash, name string, role entities.UserRole) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	now := time.Now()
	u := &entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []*entities.User{}
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateOnboarding(_ context.Context, id string, data *entities.OnboardingData) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored := *data
	u.OnboardingData = &stored
	u.OnboardingCompleted = true
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateOnboardingDraft(_ context.Context, id string, data *entities.OnboardingData) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored := *data
	u.OnboardingData = &stored
	copied := *u
	return &copied, nil
}

type fakeShareLinkRepo struct {
	mu    sync.Mutex
	links map[string]*entities.ShareLink
	finds int
}

func newFakeShareLinkRepo() *fakeShareLinkRepo {
	return &fakeShareLinkRepo{links: map[string]*entities.ShareLink{}}
}

func (r *fakeShareLinkRepo) Create(_ context.Context, link *entities.ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[link.Token]; ok {
		return repository.ErrDuplicate
	}
	copied := *link
	r.links[link.Token] = &copied
	return nil
}

func (r *fakeShareLinkRepo) FindByToken(_ context.Context, token string) (*entities.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	link, ok := r.links[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *fakeShareLinkRepo) ListByUser(_ context.Context, userID string) ([]*entities.ShareLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := []*entities.ShareLink{}
	for _, l := range r.links {
		if l.UserID == userID {
			copied := *l
			links = append(links, &copied)
		}
	}
	return links, nil
}

func (r *fakeShareLinkRepo) Delete(_ context.Context, token, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[token]
	if !ok || link.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.links, token)
	return nil
}

type fakeTripRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{docs: map[string][]byte{}}
}

func (r *fakeTripRepo) FindByUserID(_ context.Context, userID string) (*entities.BachelorTrip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var t entities.BachelorTrip
	if err := json.Unmarshal(doc, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *fakeTripRepo) CreateIfAbsent(ctx context.Context, t *entities.BachelorTrip) (*entities.BachelorTrip, error) {
	r.mu.Lock()
	if _, ok := r.docs[t.UserID]; !ok {
		doc, _ := json.Marshal(t)
		r.docs[t.UserID] = doc
	}
	r.mu.Unlock()
	return r.FindByUserID(ctx, t.UserID)
}

func (r *fakeTripRepo) Save(_ context.Context, t *entities.BachelorTrip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[t.UserID]; !ok {
		return repository.ErrNotFound
	}
	doc, err := json.Marshal(t)
	if err != nil {
		return err
	}
	r.docs[t.UserID] = doc
	return nil
}

func (r *fakeTripRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, userID)
	return nil
}
