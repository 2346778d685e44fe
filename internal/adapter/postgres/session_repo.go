package postgres

import (
	"context"
	"database/sql"

	"vbay/internal/domain"
)

// SessionRepo implements session repository operations on DB. There is at
// most one active session, so Create replaces the whole table.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Create installs a session, replacing any prior one.
func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions;"); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, user_name, user_department, user_email, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		s.Token, s.User.ID, s.User.Name, s.User.Department, s.User.Email, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Current returns the active session, or nil when none exists.
func (r *SessionRepo) Current(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, user_name, user_department, user_email, created_at, expires_at FROM sessions LIMIT 1;",
	).Scan(&s.Token, &s.User.ID, &s.User.Name, &s.User.Department, &s.User.Email, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete clears the active session.
func (r *SessionRepo) Delete(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions;")
	return err
}
