// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vbay/internal/domain"

	"github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the listing repository.
type DB struct {
	sql *sql.DB
}

var _ domain.ListingRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			ord BIGSERIAL PRIMARY KEY,
			id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL CHECK(price >= 0),
			category TEXT NOT NULL,
			image_urls TEXT[] NOT NULL,
			seller_id TEXT NOT NULL,
			seller_email TEXT NOT NULL,
			created_at TEXT NOT NULL,
			condition TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			ord BIGSERIAL PRIMARY KEY,
			listing_id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			image_urls TEXT[] NOT NULL,
			seller_id TEXT NOT NULL,
			seller_email TEXT NOT NULL,
			created_at TEXT NOT NULL,
			condition TEXT NOT NULL,
			added_at BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			user_department TEXT NOT NULL,
			user_email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// --- ListingRepository ---

const listingColumns = "id, title, description, price, category, image_urls, seller_id, seller_email, created_at, condition"

// All returns the listings in insertion order, newest first.
func (d *DB) All(ctx context.Context) ([]domain.Listing, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings ORDER BY ord DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get returns the listing with the given id, or nil.
func (d *DB) Get(ctx context.Context, id string) (*domain.Listing, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = $1;", id)
	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Add inserts a listing; the serial ord column keeps later inserts first
// in All.
func (d *DB) Add(ctx context.Context, l domain.Listing) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO listings (id, title, description, price, category, image_urls, seller_id, seller_email, created_at, condition)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		l.ID, l.Title, l.Description, l.Price, string(l.Category), pq.Array(l.ImageURLs),
		l.SellerID, l.SellerEmail, l.CreatedAt, string(l.Condition),
	)
	return err
}

// Update rewrites the editable columns of the matching row, keeping ord
// (and therefore position). Silent no-op when no row matches.
func (d *DB) Update(ctx context.Context, l domain.Listing) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE listings SET title=$2, description=$3, price=$4, category=$5, image_urls=$6, condition=$7
		 WHERE id=$1;`,
		l.ID, l.Title, l.Description, l.Price, string(l.Category), pq.Array(l.ImageURLs), string(l.Condition),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (domain.Listing, error) {
	var l domain.Listing
	var category, condition string
	var images pq.StringArray
	err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Price, &category, &images,
		&l.SellerID, &l.SellerEmail, &l.CreatedAt, &condition)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Category = domain.Category(category)
	l.Condition = domain.Condition(condition)
	l.ImageURLs = images
	return l, nil
}
