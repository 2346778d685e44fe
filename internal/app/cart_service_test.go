package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vbay/internal/app"
	"vbay/internal/domain"
)

// fakeCartRepo is a slice-backed CartRepository so tests can assert on the
// resulting cart contents directly.
type fakeCartRepo struct {
	items []domain.CartItem
}

func (f *fakeCartRepo) All(ctx context.Context) ([]domain.CartItem, error) {
	out := make([]domain.CartItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCartRepo) Add(ctx context.Context, item domain.CartItem) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCartRepo) Remove(ctx context.Context, id string) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) Update(ctx context.Context, item domain.CartItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context) error {
	f.items = nil
	return nil
}

var testUser = &domain.User{ID: "u1", Name: "Dr. Jane Mariner", Email: "jane.m@vims.edu"}

func TestCartAddRequiresSession(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := app.NewCartService(repo)

	_, err := svc.Add(context.Background(), nil, domain.Listing{ID: "1"})
	if !errors.Is(err, app.ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("cart must stay empty, has %d items", len(repo.items))
	}
}

func TestCartAddRejectsDuplicate(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := app.NewCartService(repo)

	listing := domain.Listing{ID: "1", Title: "Kayak", Price: 350}
	if _, err := svc.Add(context.Background(), testUser, listing); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(context.Background(), testUser, listing)
	if !errors.Is(err, app.ErrAlreadyInCart) {
		t.Fatalf("expected ErrAlreadyInCart, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 cart item, got %d", len(repo.items))
	}
}

func TestCartAddStampsAddedAt(t *testing.T) {
	repo := &fakeCartRepo{}
	fixed := time.Date(2023, 11, 1, 9, 0, 0, 0, time.UTC)
	svc := app.NewCartService(repo).WithClock(func() time.Time { return fixed })

	item, err := svc.Add(context.Background(), testUser, domain.Listing{ID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.AddedAt != fixed.UnixMilli() {
		t.Fatalf("AddedAt = %d, want %d", item.AddedAt, fixed.UnixMilli())
	}
}

func TestCartTotal(t *testing.T) {
	repo := &fakeCartRepo{items: []domain.CartItem{
		{Listing: domain.Listing{ID: "1", Price: 12500}},
		{Listing: domain.Listing{ID: "2", Price: 150}},
		{Listing: domain.Listing{ID: "3", Price: 30}},
	}}
	svc := app.NewCartService(repo)

	total, err := svc.Total(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12680 {
		t.Fatalf("total = %v, want 12680", total)
	}
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	repo := &fakeCartRepo{items: []domain.CartItem{{Listing: domain.Listing{ID: "1"}}}}
	svc := app.NewCartService(repo)

	if err := svc.Remove(context.Background(), "nope"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected cart untouched, got %d items", len(repo.items))
	}
}

func TestCartSyncFromListingUpdate(t *testing.T) {
	repo := &fakeCartRepo{items: []domain.CartItem{
		{Listing: domain.Listing{ID: "1", Title: "Old title", Price: 100}, AddedAt: 12345},
	}}
	svc := app.NewCartService(repo)

	updated := domain.Listing{ID: "1", Title: "New title", Price: 90}
	if err := svc.SyncFromListingUpdate(context.Background(), updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := repo.items[0]
	if got.Title != "New title" || got.Price != 90 {
		t.Fatalf("listing fields not refreshed: %+v", got)
	}
	if got.AddedAt != 12345 {
		t.Fatalf("AddedAt must be preserved, got %d", got.AddedAt)
	}
}

func TestCartSyncIgnoresMissingEntry(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := app.NewCartService(repo)

	if err := svc.SyncFromListingUpdate(context.Background(), domain.Listing{ID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("sync must not create entries, got %d", len(repo.items))
	}
}
