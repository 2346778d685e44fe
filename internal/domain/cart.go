package domain

import (
	"context"
)

// CartItem is a listing a user intends to contact the seller about, plus
// the instant it entered the cart. AddedAt is Unix milliseconds and
// survives edits to the underlying listing.
type CartItem struct {
	Listing
	AddedAt int64 `json:"addedAt"`
}

// CartRepository is the port for cart persistence. The cart is a set of
// items keyed by listing id; the repository does not enforce uniqueness
// or session requirements, the cart service does.
type CartRepository interface {
	// All returns every cart item in insertion order.
	All(ctx context.Context) ([]CartItem, error)
	// Add appends an item.
	Add(ctx context.Context, item CartItem) error
	// Remove deletes the item with the given listing id; no-op if absent.
	Remove(ctx context.Context, id string) error
	// Update refreshes the listing fields of the item with a matching id
	// in place, keeping its AddedAt. No-op when no item matches.
	Update(ctx context.Context, item CartItem) error
	// Clear empties the cart.
	Clear(ctx context.Context) error
}
