package postgres

import (
	"context"

	"vbay/internal/domain"

	"github.com/lib/pq"
)

// CartRepo implements cart repository operations on DB. Cart rows hold a
// snapshot of the listing at add (or last refresh) time.
type CartRepo struct {
	db *DB
}

// NewCartRepo wraps a DB as a CartRepository.
func NewCartRepo(db *DB) *CartRepo {
	return &CartRepo{db: db}
}

var _ domain.CartRepository = (*CartRepo)(nil)

// All returns every cart item in insertion order.
func (r *CartRepo) All(ctx context.Context) ([]domain.CartItem, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT listing_id, title, description, price, category, image_urls, seller_id, seller_email, created_at, condition, added_at
		 FROM cart_items ORDER BY ord ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var category, condition string
		var images pq.StringArray
		err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Price, &category, &images,
			&item.SellerID, &item.SellerEmail, &item.CreatedAt, &condition, &item.AddedAt)
		if err != nil {
			return nil, err
		}
		item.Category = domain.Category(category)
		item.Condition = domain.Condition(condition)
		item.ImageURLs = images
		out = append(out, item)
	}
	return out, rows.Err()
}

// Add appends a cart item.
func (r *CartRepo) Add(ctx context.Context, item domain.CartItem) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO cart_items (listing_id, title, description, price, category, image_urls, seller_id, seller_email, created_at, condition, added_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		item.ID, item.Title, item.Description, item.Price, string(item.Category), pq.Array(item.ImageURLs),
		item.SellerID, item.SellerEmail, item.CreatedAt, string(item.Condition), item.AddedAt,
	)
	return err
}

// Remove deletes the item with the given listing id, if present.
func (r *CartRepo) Remove(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM cart_items WHERE listing_id = $1;", id)
	return err
}

// Update refreshes the listing snapshot of the matching row, keeping ord
// and added_at.
func (r *CartRepo) Update(ctx context.Context, item domain.CartItem) error {
	_, err := r.db.sql.ExecContext(ctx,
		`UPDATE cart_items SET title=$2, description=$3, price=$4, category=$5, image_urls=$6, condition=$7
		 WHERE listing_id=$1;`,
		item.ID, item.Title, item.Description, item.Price, string(item.Category), pq.Array(item.ImageURLs), string(item.Condition),
	)
	return err
}

// Clear empties the cart.
func (r *CartRepo) Clear(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM cart_items;")
	return err
}
