package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
)

const auditCollection = "auth_events"

var _ ports.AuditRecorder = (*AuditRepository)(nil)

// AuditRepository appends authentication events to the auth_events
// collection. The trail is append-only and best-effort; callers tolerate
// write failures.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	doc := bson.M{
		"type":        event.Type,
		"email":       event.Email,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.AccountID != 0 {
		doc["account_id"] = event.AccountID
	}
	if event.RoleName != "" {
		doc["role_name"] = event.RoleName
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
