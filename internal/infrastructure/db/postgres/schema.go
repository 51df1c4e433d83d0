package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmlink/auth-service/internal/core/domain"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the auth, profile, and role tables when missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SeedRoles inserts the static role rows. Existing rows are left untouched so
// identifiers stay stable across restarts.
func SeedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range domain.SeededRoles {
		_, err := pool.Exec(ctx,
			`INSERT INTO role_table (role_name) VALUES ($1) ON CONFLICT (role_name) DO NOTHING`,
			name,
		)
		if err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}
