package ports

import (
	"context"

	"github.com/farmlink/auth-service/internal/core/domain"
)

// AccountStore persists authentication identities. Lookups join the role
// directory so the returned Account carries its resolved role name.
type AccountStore interface {
	// FindByEmail returns domain.ErrAccountNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByID returns domain.ErrAccountNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// Create inserts a new account and returns its generated identifier.
	// A uniqueness violation on email is reported as domain.ErrEmailTaken.
	Create(ctx context.Context, acct *domain.Account) (int64, error)
}

// ProfileStore persists the profile row owned by an account.
type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
}
