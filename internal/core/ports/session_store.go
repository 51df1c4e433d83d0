package ports

import (
	"context"

	"github.com/farmlink/auth-service/internal/core/domain"
)

// SessionStore keeps issued sessions until they expire or are revoked.
type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	// Find returns domain.ErrSessionNotFound for expired or revoked sessions.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuditRecorder appends authentication events to the audit trail. Writes are
// best-effort: callers log failures and continue.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}
