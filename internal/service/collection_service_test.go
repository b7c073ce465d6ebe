package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaha-be/internal/entities"
)

func TestGuestCRUD(t *testing.T) {
	repo := newFakeWeddingRepo()
	svc := NewGuestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", entities.Guest{Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entities.RSVPPending, created.RSVPStatus)

	updated, err := svc.Update(ctx, "user-1", created.ID, entities.Guest{ID: "ignored", Name: "Asha R", RSVPStatus: entities.RSVPAccepted})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha R", list[0].Name)
	assert.Equal(t, entities.RSVPAccepted, list[0].RSVPStatus)

	_, err = svc.Update(ctx, "user-1", "missing", entities.Guest{Name: "x"})
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", "missing"), ErrItemNotFound)

	require.NoError(t, svc.Delete(ctx, "user-1", created.ID))
	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCollectionsAreScopedPerUser(t *testing.T) {
	svc := NewTodoService(newFakeWeddingRepo())
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-1", entities.Todo{Title: "Book venue"})
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityMedium, todo.Priority)

	other, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
	assert.ErrorIs(t, svc.Delete(ctx, "user-2", todo.ID), ErrItemNotFound)
}

func TestCollectionValidation(t *testing.T) {
	repo := newFakeWeddingRepo()
	ctx := context.Background()
	var verr *ValidationError

	_, err := NewGuestService(repo).Create(ctx, "user-1", entities.Guest{})
	assert.ErrorAs(t, err, &verr, "name is required")

	_, err = NewBudgetService(repo).Create(ctx, "user-1", entities.BudgetCategory{Name: "Venue", EstimatedAmount: -5})
	assert.ErrorAs(t, err, &verr)

	_, err = NewVendorService(repo).Create(ctx, "user-1", entities.Vendor{Name: "Bloom", Category: "florist", Status: "ghosted"})
	assert.ErrorAs(t, err, &verr)

	_, err = NewTodoService(repo).Create(ctx, "user-1", entities.Todo{Title: "Taste cake", Rating: ptr(6.0)})
	assert.ErrorAs(t, err, &verr)

	assert.Zero(t, repo.saves, "invalid input is never written")
}

func TestVendorDefaults(t *testing.T) {
	v, err := NewVendorService(newFakeWeddingRepo()).Create(context.Background(), "user-1", entities.Vendor{Name: "Bloom", Category: "florist"})
	require.NoError(t, err)
	assert.Equal(t, entities.VendorResearching, v.Status)
}

func TestSeatingRules(t *testing.T) {
	repo := newFakeWeddingRepo()
	guests := NewGuestService(repo)
	seating := NewSeatingService(repo)
	ctx := context.Background()

	a, err := guests.Create(ctx, "user-1", entities.Guest{Name: "Asha"})
	require.NoError(t, err)
	b, err := guests.Create(ctx, "user-1", entities.Guest{Name: "Ben"})
	require.NoError(t, err)

	table, err := seating.Create(ctx, "user-1", entities.SeatingTable{Name: "Family", Capacity: 2, Guests: []string{a.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, entities.ShapeRound, table.Shape)

	tests := []struct {
		name  string
		table entities.SeatingTable
	}{
		{name: "unknown guest", table: entities.SeatingTable{Name: "T", Capacity: 4, Guests: []string{"nobody"}}},
		{name: "duplicate guest", table: entities.SeatingTable{Name: "T", Capacity: 4, Guests: []string{a.ID, a.ID}}},
		{name: "over capacity", table: entities.SeatingTable{Name: "T", Capacity: 1, Guests: []string{a.ID, b.ID}}},
		{name: "zero capacity", table: entities.SeatingTable{Name: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seating.Create(ctx, "user-1", tt.table)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)

			_, err = seating.Update(ctx, "user-1", table.ID, tt.table)
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestDeletingGuestUnseatsIt(t *testing.T) {
	repo := newFakeWeddingRepo()
	guests := NewGuestService(repo)
	seating := NewSeatingService(repo)
	ctx := context.Background()

	a, err := guests.Create(ctx, "user-1", entities.Guest{Name: "Asha"})
	require.NoError(t, err)
	b, err := guests.Create(ctx, "user-1", entities.Guest{Name: "Ben"})
	require.NoError(t, err)

	_, err = seating.Create(ctx, "user-1", entities.SeatingTable{Name: "One", Capacity: 4, Guests: []string{a.ID, b.ID}})
	require.NoError(t, err)
	_, err = seating.Create(ctx, "user-1", entities.SeatingTable{Name: "Two", Capacity: 4, Guests: []string{a.ID}})
	require.NoError(t, err)

	require.NoError(t, guests.Delete(ctx, "user-1", a.ID))

	tables, err := seating.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, []string{b.ID}, tables[0].Guests)
	assert.Equal(t, []string{}, tables[1].Guests)
}
