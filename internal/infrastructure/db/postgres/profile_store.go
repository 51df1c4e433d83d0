package postgres

import (
	"context"
	"fmt"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
)

var _ ports.ProfileStore = (*ProfileStore)(nil)

// ProfileStore implements ports.ProfileStore against users_table.
type ProfileStore struct {
	q querier
}

func NewProfileStore(q querier) *ProfileStore {
	return &ProfileStore{q: q}
}

func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO users_table (auth_id, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id`,
		profile.AuthID, profile.FirstName, profile.LastName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	return id, nil
}
