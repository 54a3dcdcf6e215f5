package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ninjabel/SetupCreator/internal/model"
)

// TokenRepo persists refresh tokens. Tokens are looked up by their raw
// value, which is unique per issued session.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a refresh token row for a user.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, exp)
	return err
}

// Get returns the row matching the raw token. ErrNotFound when absent.
// Expiry is not checked here; the handler decides how to report it.
func (r *TokenRepo) Get(ctx context.Context, token string) (model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,token,expires_at,created_at FROM refresh_tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshToken{}, ErrNotFound
	}
	return t, err
}

// Delete removes the row matching the raw token. Deleting an absent token
// is not an error; logout is idempotent.
func (r *TokenRepo) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token=?", token)
	return err
}

// DeleteExpired lazily purges every expired refresh token in the store.
// The sweep is store-wide, not scoped to a single user, and runs on login.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < ?", now)
	return err
}
