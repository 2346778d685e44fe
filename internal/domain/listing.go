// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
)

// Category classifies a listing into one of the fixed marketplace sections.
type Category string

// The fixed set of marketplace categories.
const (
	CategoryVehicles    Category = "Vehicles"
	CategoryHousing     Category = "Housing & Rentals"
	CategoryFurniture   Category = "Furniture"
	CategoryElectronics Category = "Electronics"
	CategoryOutdoor     Category = "Outdoor & Marine"
	CategoryClothing    Category = "Clothing & Accessories"
	CategoryBooks       Category = "Books & Textbooks"
	CategoryMisc        Category = "Miscellaneous"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryVehicles,
		CategoryHousing,
		CategoryFurniture,
		CategoryElectronics,
		CategoryOutdoor,
		CategoryClothing,
		CategoryBooks,
		CategoryMisc,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Condition describes the physical state of a listed item.
type Condition string

// The fixed set of item conditions.
const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

// Conditions returns all conditions in display order.
func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}
}

// Valid reports whether c is one of the known conditions.
func (c Condition) Valid() bool {
	for _, known := range Conditions() {
		if c == known {
			return true
		}
	}
	return false
}

// Listing is a single item offered for sale.
//
// SellerID, SellerEmail and CreatedAt are immutable after creation, even
// when the owning seller edits the other fields. CreatedAt is an RFC 3339
// string so the default newest-first ordering can compare it
// lexicographically.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	ImageURLs   []string  `json:"imageUrls"`
	SellerID    string    `json:"sellerId"`
	SellerEmail string    `json:"sellerEmail"`
	CreatedAt   string    `json:"createdAt"`
	Condition   Condition `json:"condition"`
}

// ListingRepository is the port for listing persistence.
//
// The repository is a dumb container: it performs no ownership or
// validation checks. Authorization is a documented precondition on Update
// and is enforced by the application service that calls it.
type ListingRepository interface {
	// All returns the full listing sequence in insertion order,
	// newest first.
	All(ctx context.Context) ([]Listing, error)
	// Get returns the listing with the given id, or nil when absent.
	Get(ctx context.Context, id string) (*Listing, error)
	// Add prepends a new listing.
	Add(ctx context.Context, listing Listing) error
	// Update replaces the listing with a matching id in place, preserving
	// its position. When no listing matches it is a silent no-op.
	Update(ctx context.Context, listing Listing) error
}
