package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository persists device tokens for push notifications in
// Postgres so registrations survive restarts.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// RegisterToken adds or refreshes a device token.
func (r *TokenRepository) RegisterToken(ctx context.Context, token, platform string) error {
	_, err := r.pool.Exec(ctx, `
		insert into device_tokens(token, platform, created_at)
		values ($1, $2, now())
		on conflict (token) do update set
			platform = excluded.platform,
			created_at = excluded.created_at
	`, token, platform)
	return err
}

// UnregisterToken removes a device token.
func (r *TokenRepository) UnregisterToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `delete from device_tokens where token = $1`, token)
	return err
}

// GetAllTokens returns all registered tokens.
func (r *TokenRepository) GetAllTokens(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select token from device_tokens order by created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// TokenCount returns the number of registered tokens.
func (r *TokenRepository) TokenCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `select count(*) from device_tokens`).Scan(&count)
	return count, err
}
