// Package localstore implements the repositories as three independently
// keyed JSON slot files. Every mutation re-serializes the whole collection
// to its slot; the in-memory state stays authoritative when a write fails.
package localstore

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"vbay/internal/domain"
)

// Slot file names, one per persisted collection.
const (
	listingsSlot = "listings.json"
	cartSlot     = "cart.json"
	sessionSlot  = "session.json"
)

// Store holds the three collections in memory and mirrors each to its own
// slot file after every mutation. Missing or corrupt slots are replaced by
// defaults at open time: the seed listings, an empty cart, no session.
type Store struct {
	mu       sync.Mutex
	dir      string
	listings []domain.Listing
	cart     []domain.CartItem
	session  *domain.Session
	warn     func(error)
}

// Ensure interfaces are met.
var _ domain.ListingRepository = (*Store)(nil)
var _ domain.SessionRepository = (*Store)(nil)
var _ domain.CartRepository = (*CartRepo)(nil)

// Open loads the three slots from dir, creating it if needed. Decode
// failures are not fatal: the slot falls back to its default and the
// problem is logged.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		dir:  dir,
		warn: func(err error) { log.Printf("localstore: write failed: %v", err) },
	}

	if !loadSlot(filepath.Join(dir, listingsSlot), &s.listings) {
		s.listings = SeedListings()
	}
	if !loadSlot(filepath.Join(dir, cartSlot), &s.cart) {
		s.cart = nil
	}
	var session domain.Session
	if loadSlot(filepath.Join(dir, sessionSlot), &session) {
		s.session = &session
	}

	return s, nil
}

// OnWriteError installs fn as the handler for failed slot writes (e.g.
// disk full). Write failures never fail the mutation itself.
func (s *Store) OnWriteError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warn = fn
}

// loadSlot decodes path into dst, reporting whether usable data was found.
func loadSlot(path string, dst any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("localstore: read %s: %v", filepath.Base(path), err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("localstore: corrupt slot %s, using defaults: %v", filepath.Base(path), err)
		return false
	}
	return true
}

// saveSlot serializes v to the named slot via a temp-file rename. Errors
// go to the warn handler; the caller's mutation still succeeds.
func (s *Store) saveSlot(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.warn(err)
		return
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.warn(err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.warn(err)
	}
}

// --- ListingRepository ---

// All returns the listings in insertion order, newest first.
func (s *Store) All(ctx context.Context) ([]domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}

// Get returns the listing with the given id, or nil.
func (s *Store) Get(ctx context.Context, id string) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID == id {
			l := s.listings[i]
			return &l, nil
		}
	}
	return nil, nil
}

// Add prepends a listing and rewrites the listings slot.
func (s *Store) Add(ctx context.Context, listing domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings = append([]domain.Listing{listing}, s.listings...)
	s.saveSlot(listingsSlot, s.listings)
	return nil
}

// Update replaces the matching listing in place and rewrites the slot.
// Silent no-op when no id matches.
func (s *Store) Update(ctx context.Context, listing domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID == listing.ID {
			s.listings[i] = listing
			s.saveSlot(listingsSlot, s.listings)
			return nil
		}
	}
	return nil
}

// --- CartRepository ---

// CartRepo wraps a Store as a CartRepository.
type CartRepo struct {
	store *Store
}

// NewCartRepo creates a cart repository sharing this store.
func (s *Store) NewCartRepo() *CartRepo {
	return &CartRepo{store: s}
}

// All returns every cart item in insertion order.
func (r *CartRepo) All(ctx context.Context) ([]domain.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.CartItem, len(r.store.cart))
	copy(out, r.store.cart)
	return out, nil
}

// Add appends a cart item and rewrites the cart slot.
func (r *CartRepo) Add(ctx context.Context, item domain.CartItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.cart = append(r.store.cart, item)
	r.store.saveSlot(cartSlot, r.store.cart)
	return nil
}

// Remove deletes the item with the given listing id, if present.
func (r *CartRepo) Remove(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.cart {
		if r.store.cart[i].ID == id {
			r.store.cart = append(r.store.cart[:i], r.store.cart[i+1:]...)
			r.store.saveSlot(cartSlot, r.store.cart)
			return nil
		}
	}
	return nil
}

// Update refreshes the matching item in place.
func (r *CartRepo) Update(ctx context.Context, item domain.CartItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.cart {
		if r.store.cart[i].ID == item.ID {
			r.store.cart[i] = item
			r.store.saveSlot(cartSlot, r.store.cart)
			return nil
		}
	}
	return nil
}

// Clear empties the cart and rewrites its slot.
func (r *CartRepo) Clear(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.cart = nil
	r.store.saveSlot(cartSlot, r.store.cart)
	return nil
}

// --- SessionRepository ---

// Create installs a session, replacing any prior one, and rewrites the
// session slot.
func (s *Store) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.session = &copied
	s.saveSlot(sessionSlot, s.session)
	return nil
}

// Current returns the active session, or nil when none exists.
func (s *Store) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

// Delete clears the active session and removes its slot file, mirroring
// the absent state rather than writing a null document.
func (s *Store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := os.Remove(filepath.Join(s.dir, sessionSlot)); err != nil && !os.IsNotExist(err) {
		s.warn(err)
	}
	return nil
}
