package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vbay/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrListingNotFound indicates the requested listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
	// ErrNotOwner indicates an edit was attempted by someone other than
	// the listing's seller.
	ErrNotOwner = errors.New("you do not have permission to edit this item")
)

// maxImages is the number of images a published listing may carry.
const maxImages = 5

// ListingInput is the caller-editable portion of a listing.
type ListingInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"imageUrls"`
}

// ListingService encapsulates listing use cases. Ownership checks live
// here, not in the repository: the store stays a dumb container.
type ListingService struct {
	repo        domain.ListingRepository
	cart        *CartService
	submitDelay time.Duration
	now         func() time.Time
}

// NewListingService creates a ListingService backed by the given
// repository. cart is notified when a listing is edited so matching cart
// entries show the new fields.
func NewListingService(repo domain.ListingRepository, cart *CartService) *ListingService {
	return &ListingService{repo: repo, cart: cart, now: time.Now}
}

// WithSubmitDelay sets a fixed artificial latency applied to Create and
// Update, simulating the original form's submission delay. Zero disables
// it.
func (s *ListingService) WithSubmitDelay(d time.Duration) *ListingService {
	s.submitDelay = d
	return s
}

// WithClock overrides the service's time source. Used by tests.
func (s *ListingService) WithClock(now func() time.Time) *ListingService {
	s.now = now
	return s
}

// List returns the listings matching the query, sorted per its sort mode.
func (s *ListingService) List(ctx context.Context, q domain.Query) ([]domain.Listing, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ApplyQuery(all, q), nil
}

// Get returns the listing with the given id, or ErrListingNotFound.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	return l, nil
}

// Create validates input and publishes a new listing for user. The id,
// seller identity and creation timestamp are stamped here and never change
// afterwards.
func (s *ListingService) Create(ctx context.Context, user *domain.User, input ListingInput) (*domain.Listing, error) {
	if user == nil {
		return nil, ErrLoginRequired
	}
	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	listing := domain.Listing{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    domain.Category(input.Category),
		ImageURLs:   input.ImageURLs,
		SellerID:    user.ID,
		SellerEmail: user.Email,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Condition:   domain.Condition(input.Condition),
	}
	if err := s.repo.Add(ctx, listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update edits an existing listing owned by user. Seller identity and the
// creation timestamp are carried over from the stored listing regardless
// of input. Any matching cart entry is refreshed with its AddedAt intact.
func (s *ListingService) Update(ctx context.Context, user *domain.User, id string, input ListingInput) (*domain.Listing, error) {
	if user == nil {
		return nil, ErrLoginRequired
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrListingNotFound
	}
	if existing.SellerID != user.ID {
		return nil, ErrNotOwner
	}
	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	updated := domain.Listing{
		ID:          existing.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    domain.Category(input.Category),
		ImageURLs:   input.ImageURLs,
		SellerID:    existing.SellerID,
		SellerEmail: existing.SellerEmail,
		CreatedAt:   existing.CreatedAt,
		Condition:   domain.Condition(input.Condition),
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.cart.SyncFromListingUpdate(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// wait blocks for the configured submit delay, or until ctx is cancelled.
func (s *ListingService) wait(ctx context.Context) error {
	if s.submitDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.submitDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func validateListingInput(input ListingInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errors.New("title must not be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return errors.New("description must not be empty")
	}
	if input.Price < 0 {
		return errors.New("price must be >= 0")
	}
	if !domain.Category(input.Category).Valid() {
		return fmt.Errorf("unknown category %q", input.Category)
	}
	if !domain.Condition(input.Condition).Valid() {
		return fmt.Errorf("unknown condition %q", input.Condition)
	}
	if len(input.ImageURLs) == 0 {
		return errors.New("at least one image is required")
	}
	if len(input.ImageURLs) > maxImages {
		return fmt.Errorf("at most %d images are allowed", maxImages)
	}
	return nil
}
