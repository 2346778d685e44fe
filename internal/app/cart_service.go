package app

import (
	"context"
	"errors"
	"time"

	"vbay/internal/domain"
)

var (
	// ErrLoginRequired indicates a cart mutation was attempted without an
	// active session.
	ErrLoginRequired = errors.New("you must be logged in to add items to your cart")
	// ErrAlreadyInCart indicates the listing is already in the cart.
	ErrAlreadyInCart = errors.New("item is already in your cart")
)

// CartService encapsulates cart use cases. An item enters the cart at most
// once per listing id and only while a session is active.
type CartService struct {
	repo domain.CartRepository
	now  func() time.Time
}

// NewCartService creates a CartService backed by the given repository.
func NewCartService(repo domain.CartRepository) *CartService {
	return &CartService{repo: repo, now: time.Now}
}

// WithClock overrides the service's time source. Used by tests.
func (s *CartService) WithClock(now func() time.Time) *CartService {
	s.now = now
	return s
}

// Add places a listing in the cart for the given user. It fails with
// ErrLoginRequired when user is nil and with ErrAlreadyInCart when the
// listing is already present; in both cases the cart is untouched.
func (s *CartService) Add(ctx context.Context, user *domain.User, listing domain.Listing) (*domain.CartItem, error) {
	if user == nil {
		return nil, ErrLoginRequired
	}

	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == listing.ID {
			return nil, ErrAlreadyInCart
		}
	}

	item := domain.CartItem{Listing: listing, AddedAt: s.now().UnixMilli()}
	if err := s.repo.Add(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes the cart entry with the given listing id, if present.
func (s *CartService) Remove(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}

// Items returns every cart entry in insertion order.
func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	return s.repo.All(ctx)
}

// Total sums the price of every cart entry. There is no quantity concept;
// each listing contributes once.
func (s *CartService) Total(ctx context.Context) (float64, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total, nil
}

// SyncFromListingUpdate refreshes the cart entry matching the updated
// listing, keeping its original AddedAt. No-op when the listing is not in
// the cart.
func (s *CartService) SyncFromListingUpdate(ctx context.Context, updated domain.Listing) error {
	items, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == updated.ID {
			return s.repo.Update(ctx, domain.CartItem{Listing: updated, AddedAt: item.AddedAt})
		}
	}
	return nil
}

// Clear empties the cart. Called on logout: cart contents are not retained
// across sessions.
func (s *CartService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
