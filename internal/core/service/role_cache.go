package service

import (
	"context"
	"sync"

	"github.com/farmlink/auth-service/internal/core/ports"
)

// CachedRoleDirectory memoises successful role lookups. The role table is
// static reference data seeded at startup, so entries never need invalidation.
// Unknown names are not cached; a later seed run must become visible.
type CachedRoleDirectory struct {
	next ports.RoleDirectory

	mu     sync.RWMutex
	byName map[string]int64
}

func NewCachedRoleDirectory(next ports.RoleDirectory) *CachedRoleDirectory {
	return &CachedRoleDirectory{next: next, byName: make(map[string]int64)}
}

func (c *CachedRoleDirectory) ResolveRoleID(ctx context.Context, roleName string) (int64, error) {
	c.mu.RLock()
	id, ok := c.byName[roleName]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := c.next.ResolveRoleID(ctx, roleName)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.byName[roleName] = id
	c.mu.Unlock()
	return id, nil
}
