// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"sync"

	"vbay/internal/domain"
)

// DB implements the listing and session repositories in memory and hands
// out a cart repository sharing the same lock.
type DB struct {
	mu       sync.Mutex
	listings []domain.Listing
	cart     []domain.CartItem
	session  *domain.Session
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.ListingRepository = (*DB)(nil)
var _ domain.SessionRepository = (*DB)(nil)
var _ domain.CartRepository = (*CartRepo)(nil)

// Seed replaces the listing collection. Intended for tests and dev setup.
func (db *DB) Seed(listings []domain.Listing) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.listings = make([]domain.Listing, len(listings))
	copy(db.listings, listings)
}

// --- ListingRepository ---

// All returns the listings in insertion order, newest first.
func (db *DB) All(ctx context.Context) ([]domain.Listing, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Listing, len(db.listings))
	copy(out, db.listings)
	return out, nil
}

// Get returns the listing with the given id, or nil.
func (db *DB) Get(ctx context.Context, id string) (*domain.Listing, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.listings {
		if db.listings[i].ID == id {
			l := db.listings[i]
			return &l, nil
		}
	}
	return nil, nil
}

// Add prepends a listing.
func (db *DB) Add(ctx context.Context, listing domain.Listing) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.listings = append([]domain.Listing{listing}, db.listings...)
	return nil
}

// Update replaces the matching listing in place. Silent no-op when no id
// matches.
func (db *DB) Update(ctx context.Context, listing domain.Listing) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.listings {
		if db.listings[i].ID == listing.ID {
			db.listings[i] = listing
			return nil
		}
	}
	return nil
}

// --- CartRepository ---

// CartRepo wraps a DB as a CartRepository.
type CartRepo struct {
	db *DB
}

// NewCartRepo creates a cart repository sharing this database.
func (db *DB) NewCartRepo() *CartRepo {
	return &CartRepo{db: db}
}

// All returns every cart item in insertion order.
func (r *CartRepo) All(ctx context.Context) ([]domain.CartItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.CartItem, len(r.db.cart))
	copy(out, r.db.cart)
	return out, nil
}

// Add appends a cart item.
func (r *CartRepo) Add(ctx context.Context, item domain.CartItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.cart = append(r.db.cart, item)
	return nil
}

// Remove deletes the item with the given listing id, if present.
func (r *CartRepo) Remove(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cart {
		if r.db.cart[i].ID == id {
			r.db.cart = append(r.db.cart[:i], r.db.cart[i+1:]...)
			return nil
		}
	}
	return nil
}

// Update refreshes the matching item in place.
func (r *CartRepo) Update(ctx context.Context, item domain.CartItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cart {
		if r.db.cart[i].ID == item.ID {
			r.db.cart[i] = item
			return nil
		}
	}
	return nil
}

// Clear empties the cart.
func (r *CartRepo) Clear(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.cart = nil
	return nil
}

// --- SessionRepository ---

// Create installs a session, replacing any prior one.
func (db *DB) Create(ctx context.Context, session *domain.Session) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := *session
	db.session = &s
	return nil
}

// Current returns the active session, or nil when none exists.
func (db *DB) Current(ctx context.Context) (*domain.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.session == nil {
		return nil, nil
	}
	s := *db.session
	return &s, nil
}

// Delete clears the active session.
func (db *DB) Delete(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.session = nil
	return nil
}
