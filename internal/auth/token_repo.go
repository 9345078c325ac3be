package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepo is the expiry-bearing token store behind the sync API.
// Tokens are opaque; validity means "found and not yet expired".
type TokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepo(db *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Validate(ctx context.Context, token string) (bool, error) {
	var expiration *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT token_expiration
		FROM auth_user_token
		WHERE token = $1
		LIMIT 1
	`, token).Scan(&expiration)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return expiration != nil && expiration.After(time.Now().UTC()), nil
}

// Create mints a fresh token valid for ttl and stores it. Used by the
// operator CLI; request handling only ever reads.
func (r *TokenRepo) Create(ctx context.Context, ttl time.Duration) (string, error) {
	token, err := randomToken(32)
	if err != nil {
		return "", err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO auth_user_token (token, token_expiration)
		VALUES ($1, $2)
	`, token, time.Now().UTC().Add(ttl))
	if err != nil {
		return "", err
	}
	return token, nil
}
