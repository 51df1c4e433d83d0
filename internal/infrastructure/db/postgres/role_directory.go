package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
)

var _ ports.RoleDirectory = (*RoleDirectory)(nil)

// RoleDirectory resolves role names against role_table.
type RoleDirectory struct {
	q querier
}

func NewRoleDirectory(q querier) *RoleDirectory {
	return &RoleDirectory{q: q}
}

func (d *RoleDirectory) ResolveRoleID(ctx context.Context, roleName string) (int64, error) {
	var id int64
	err := d.q.QueryRow(ctx, `SELECT id FROM role_table WHERE role_name = $1`, roleName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUnknownRole
		}
		return 0, fmt.Errorf("resolve role: %w", err)
	}
	return id, nil
}
