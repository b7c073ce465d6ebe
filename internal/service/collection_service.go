package service

import (
	"context"
	"fmt"
	"slices"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/repository"
)

// CollectionService is CRUD over one nested collection of the caller's
// wedding or bachelor trip. Every mutation rewrites the whole document.
type CollectionService[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Create(ctx context.Context, userID string, item T) (*T, error)
	Update(ctx context.Context, userID, id string, item T) (*T, error)
	Delete(ctx context.Context, userID, id string) error
}

// docStore loads and rewrites the one document of type A a user owns.
type docStore[A any] interface {
	load(ctx context.Context, userID string) (*A, error)
	mutate(ctx context.Context, userID string, fn func(*A) error) (*A, error)
	nextID() string
}

// collection describes where a nested list lives inside the document and the
// rules attached to it. check may also fill fields derived from the document.
type collection[A, T any] struct {
	items    func(*A) *[]T
	id       func(*T) *string
	defaults func(*T)
	check    func(*A, *T) error
	removed  func(doc *A, id string)
}

type collectionService[A, T any] struct {
	store docStore[A]
	coll  collection[A, T]
}

func weddingCollection[T any](repo repository.WeddingRepository, coll collection[entities.Wedding, T]) CollectionService[T] {
	return &collectionService[entities.Wedding, T]{store: newWeddingStore(repo), coll: coll}
}

func (s *collectionService[A, T]) List(ctx context.Context, userID string) ([]T, error) {
	doc, err := s.store.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := *s.coll.items(doc)
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Create assigns a fresh ID and appends item.
func (s *collectionService[A, T]) Create(ctx context.Context, userID string, item T) (*T, error) {
	if err := s.prepare(&item); err != nil {
		return nil, err
	}
	*s.coll.id(&item) = s.store.nextID()

	_, err := s.store.mutate(ctx, userID, func(doc *A) error {
		if s.coll.check != nil {
			if err := s.coll.check(doc, &item); err != nil {
				return err
			}
		}
		list := s.coll.items(doc)
		*list = append(*list, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the item with the given ID. The ID itself never changes.
func (s *collectionService[A, T]) Update(ctx context.Context, userID, id string, item T) (*T, error) {
	if err := s.prepare(&item); err != nil {
		return nil, err
	}
	*s.coll.id(&item) = id

	_, err := s.store.mutate(ctx, userID, func(doc *A) error {
		list := s.coll.items(doc)
		i := s.indexOf(*list, id)
		if i < 0 {
			return ErrItemNotFound
		}
		if s.coll.check != nil {
			if err := s.coll.check(doc, &item); err != nil {
				return err
			}
		}
		(*list)[i] = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *collectionService[A, T]) Delete(ctx context.Context, userID, id string) error {
	_, err := s.store.mutate(ctx, userID, func(doc *A) error {
		list := s.coll.items(doc)
		i := s.indexOf(*list, id)
		if i < 0 {
			return ErrItemNotFound
		}
		*list = slices.Delete(*list, i, i+1)
		if s.coll.removed != nil {
			s.coll.removed(doc, id)
		}
		return nil
	})
	return err
}

func (s *collectionService[A, T]) prepare(item *T) error {
	if s.coll.defaults != nil {
		s.coll.defaults(item)
	}
	return validateStruct(item)
}

func (s *collectionService[A, T]) indexOf(list []T, id string) int {
	for i := range list {
		if *s.coll.id(&list[i]) == id {
			return i
		}
	}
	return -1
}

// NewGuestService manages guests. Deleting a guest also unseats it.
func NewGuestService(repo repository.WeddingRepository) CollectionService[entities.Guest] {
	return weddingCollection(repo, collection[entities.Wedding, entities.Guest]{
		items: func(w *entities.Wedding) *[]entities.Guest { return &w.Guests },
		id:    func(g *entities.Guest) *string { return &g.ID },
		defaults: func(g *entities.Guest) {
			if g.RSVPStatus == "" {
				g.RSVPStatus = entities.RSVPPending
			}
		},
		removed: unseatGuest,
	})
}

func NewBudgetService(repo repository.WeddingRepository) CollectionService[entities.BudgetCategory] {
	return weddingCollection(repo, collection[entities.Wedding, entities.BudgetCategory]{
		items: func(w *entities.Wedding) *[]entities.BudgetCategory { return &w.Budget },
		id:    func(c *entities.BudgetCategory) *string { return &c.ID },
	})
}

func NewTodoService(repo repository.WeddingRepository) CollectionService[entities.Todo] {
	return weddingCollection(repo, collection[entities.Wedding, entities.Todo]{
		items: func(w *entities.Wedding) *[]entities.Todo { return &w.Todos },
		id:    func(t *entities.Todo) *string { return &t.ID },
		defaults: func(t *entities.Todo) {
			if t.Priority == "" {
				t.Priority = entities.PriorityMedium
			}
		},
	})
}

func NewVendorService(repo repository.WeddingRepository) CollectionService[entities.Vendor] {
	return weddingCollection(repo, collection[entities.Wedding, entities.Vendor]{
		items: func(w *entities.Wedding) *[]entities.Vendor { return &w.Vendors },
		id:    func(v *entities.Vendor) *string { return &v.ID },
		defaults: func(v *entities.Vendor) {
			if v.Status == "" {
				v.Status = entities.VendorResearching
			}
		},
	})
}

// NewSeatingService manages seating tables. A table may only list known
// guests, each at most once, and no more of them than its capacity.
func NewSeatingService(repo repository.WeddingRepository) CollectionService[entities.SeatingTable] {
	return weddingCollection(repo, collection[entities.Wedding, entities.SeatingTable]{
		items: func(w *entities.Wedding) *[]entities.SeatingTable { return &w.Seating },
		id:    func(t *entities.SeatingTable) *string { return &t.ID },
		defaults: func(t *entities.SeatingTable) {
			if t.Shape == "" {
				t.Shape = entities.ShapeRound
			}
			if t.Guests == nil {
				t.Guests = []string{}
			}
		},
		check: checkSeating,
	})
}

func checkSeating(w *entities.Wedding, table *entities.SeatingTable) error {
	if len(table.Guests) > table.Capacity {
		return invalid(fmt.Sprintf("table %q seats %d guests but has capacity %d", table.Name, len(table.Guests), table.Capacity))
	}

	known := make(map[string]bool, len(w.Guests))
	for _, g := range w.Guests {
		known[g.ID] = true
	}

	seen := make(map[string]bool, len(table.Guests))
	for _, id := range table.Guests {
		if !known[id] {
			return invalid(fmt.Sprintf("unknown guest %q", id))
		}
		if seen[id] {
			return invalid(fmt.Sprintf("guest %q is listed twice", id))
		}
		seen[id] = true
	}
	return nil
}

// unseatGuest drops a deleted guest from every table.
func unseatGuest(w *entities.Wedding, guestID string) {
	for i := range w.Seating {
		w.Seating[i].Guests = slices.DeleteFunc(w.Seating[i].Guests, func(id string) bool {
			return id == guestID
		})
	}
}
