package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrConfigNotFound = errors.New("config entry not found")

type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type postgresConfigRepository struct {
	db *sql.DB
}

func NewPostgresConfigRepository(db *sql.DB) ConfigRepository {
	return &postgresConfigRepository{db: db}
}

func (r *postgresConfigRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM app_config WHERE key = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrConfigNotFound
		}
		return "", fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing whatever was there.
func (r *postgresConfigRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return nil
}
