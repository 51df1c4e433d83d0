package ports

import "context"

// RoleDirectory maps human-readable role names to their stable identifiers.
// The backing table is static reference data, so implementations may cache.
type RoleDirectory interface {
	// ResolveRoleID returns domain.ErrUnknownRole when the name is not seeded.
	ResolveRoleID(ctx context.Context, roleName string) (int64, error)
}
