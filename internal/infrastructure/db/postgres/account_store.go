package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
)

var _ ports.AccountStore = (*AccountStore)(nil)

// AccountStore implements ports.AccountStore against auth_table. It runs on
// any querier, so the same code serves both pool-scoped reads and
// transaction-scoped writes.
type AccountStore struct {
	q querier
}

func NewAccountStore(q querier) *AccountStore {
	return &AccountStore{q: q}
}

const accountColumns = `a.id, a.email, a.password_hash, a.role_id, r.role_name`

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM auth_table a
		JOIN role_table r ON r.id = a.role_id
		WHERE a.email = $1`, email)
	return scanAccount(row)
}

func (s *AccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM auth_table a
		JOIN role_table r ON r.id = a.role_id
		WHERE a.id = $1`, id)
	return scanAccount(row)
}

// Create inserts the account and returns the generated identifier. A unique
// violation on email maps to domain.ErrEmailTaken: the index is the final
// arbiter when two registrations race past the pre-check.
func (s *AccountStore) Create(ctx context.Context, acct *domain.Account) (int64, error) {
	var id int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO auth_table (email, password_hash, role_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		acct.Email, acct.PasswordHash, acct.RoleID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.RoleID, &a.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

// isUniqueViolation reports whether err is a unique-constraint violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
