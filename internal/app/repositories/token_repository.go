package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pintando7/escolinha/internal/pkg/apperrors"
)

// TokenRepository handles persisted refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Store saves a refresh token for the given user.
func (r *TokenRepository) Store(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// Validate checks that a refresh token exists, is not revoked and has
// not expired, and returns the owning user ID.
func (r *TokenRepository) Validate(ctx context.Context, token string) (string, error) {
	var (
		userID    string
		expiresAt time.Time
		revoked   bool
	)
	err := r.db.QueryRow(ctx,
		`SELECT user_id::text, expires_at, revoked FROM refresh_tokens WHERE token = $1`, token).
		Scan(&userID, &expiresAt, &revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrTokenNotFound
		}
		return "", fmt.Errorf("error looking up refresh token: %w", err)
	}

	if revoked {
		return "", apperrors.ErrTokenInvalid
	}
	if time.Now().After(expiresAt) {
		return "", apperrors.ErrTokenExpired
	}
	return userID, nil
}

// Revoke marks a single refresh token as revoked.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser revokes every refresh token issued for a user.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}
