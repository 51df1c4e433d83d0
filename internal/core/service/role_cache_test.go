package service

import (
	"context"
	"errors"
	"testing"

	"github.com/farmlink/auth-service/internal/core/domain"
)

type countingRoles struct {
	inner *memRoles
	calls int
}

func (d *countingRoles) ResolveRoleID(ctx context.Context, roleName string) (int64, error) {
	d.calls++
	return d.inner.ResolveRoleID(ctx, roleName)
}

func TestCachedRoleDirectory_MemoisesHits(t *testing.T) {
	backend := &countingRoles{inner: &memRoles{db: newMemDB()}}
	cache := NewCachedRoleDirectory(backend)

	for i := 0; i < 3; i++ {
		id, err := cache.ResolveRoleID(context.Background(), domain.RoleFarmer)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if id == 0 {
			t.Fatalf("expected role id")
		}
	}
	if backend.calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.calls)
	}
}

func TestCachedRoleDirectory_DoesNotCacheMisses(t *testing.T) {
	backend := &countingRoles{inner: &memRoles{db: newMemDB()}}
	cache := NewCachedRoleDirectory(backend)

	for i := 0; i < 2; i++ {
		if _, err := cache.ResolveRoleID(context.Background(), "mayor"); !errors.Is(err, domain.ErrUnknownRole) {
			t.Fatalf("expected ErrUnknownRole, got %v", err)
		}
	}
	if backend.calls != 2 {
		t.Fatalf("misses must not be cached, got %d backend calls", backend.calls)
	}
}
