package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
	"github.com/farmlink/auth-service/internal/metrics"
)

// AuthService implements registration, login, and logout. Registration is the
// correctness boundary for account provisioning: the account and profile rows
// are written together inside one transaction or not at all.
type AuthService struct {
	accounts   ports.AccountStore
	tx         ports.TxRunner
	roles      ports.RoleDirectory
	hasher     ports.CredentialHasher
	sessions   ports.SessionStore
	audit      ports.AuditRecorder
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountStore,
	tx ports.TxRunner,
	roles ports.RoleDirectory,
	hasher ports.CredentialHasher,
	sessions ports.SessionStore,
	audit ports.AuditRecorder,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:   accounts,
		tx:         tx,
		roles:      roles,
		hasher:     hasher,
		sessions:   sessions,
		audit:      audit,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Register provisions a new account plus its profile as a single atomic unit.
// The email-uniqueness pre-check inside the transaction is an optimisation;
// the unique index on auth_table.email is the arbiter under concurrency, and
// its violation surfaces as the same domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || in.RoleName == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var accountID int64
	err := s.tx.Run(ctx, func(accounts ports.AccountStore, profiles ports.ProfileStore) error {
		_, err := accounts.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return domain.ErrEmailTaken
		case !errors.Is(err, domain.ErrAccountNotFound):
			return fmt.Errorf("check email: %w", err)
		}

		roleID, err := s.roles.ResolveRoleID(ctx, in.RoleName)
		if err != nil {
			return err
		}

		start := time.Now()
		hash, err := s.hasher.Hash(in.Password)
		metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		accountID, err = accounts.Create(ctx, &domain.Account{
			Email:        email,
			PasswordHash: hash,
			RoleID:       roleID,
		})
		if err != nil {
			return err
		}

		_, err = profiles.Create(ctx, &domain.Profile{
			AuthID:    accountID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
		})
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(roleLabel(in.RoleName), outcomeLabel(err)).Inc()
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(roleLabel(in.RoleName), "success").Inc()
	s.log.Info().Int64("account_id", accountID).Str("role", in.RoleName).Msg("account registered")
	s.recordAudit(ctx, domain.AuthEvent{
		Type:      domain.EventRegistered,
		AccountID: accountID,
		Email:     email,
		RoleName:  in.RoleName,
		At:        time.Now().UTC(),
	})

	return &ports.RegisterResult{AccountID: accountID, Email: email}, nil
}

// Login verifies the credentials and issues a session token. A missing
// account and a wrong password are indistinguishable to the caller; only
// datastore failures surface as domain.ErrServiceUnavailable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, s.failLogin(ctx, email)
		}
		metrics.LoginsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	if !s.hasher.Verify(password, acct.PasswordHash) {
		return nil, s.failLogin(ctx, email)
	}

	token, err := s.issueSession(ctx, acct)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("account_id", acct.ID).Str("role", acct.RoleName).Msg("login")
	s.recordAudit(ctx, domain.AuthEvent{
		Type:      domain.EventLogin,
		AccountID: acct.ID,
		Email:     acct.Email,
		RoleName:  acct.RoleName,
		At:        time.Now().UTC(),
	})

	return &ports.LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		RoleName:  acct.RoleName,
		Token:     token,
	}, nil
}

// Logout revokes the session. Revoking an already-revoked session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	metrics.SessionsRevokedTotal.Inc()
	s.recordAudit(ctx, domain.AuthEvent{
		Type:      domain.EventLogout,
		AccountID: sess.AccountID,
		Email:     sess.Email,
		RoleName:  sess.RoleName,
		At:        time.Now().UTC(),
	})
	return nil
}

// issueSession stores a new session and returns the signed token carrying its
// ID. The role claim in the token is informational; authorization re-resolves
// the role server-side on every protected request.
func (s *AuthService) issueSession(ctx context.Context, acct *domain.Account) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	sess := &domain.Session{
		ID:        id,
		AccountID: acct.ID,
		Email:     acct.Email,
		RoleName:  acct.RoleName,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", acct.ID),
		"email": acct.Email,
		"role":  acct.RoleName,
		"jti":   id,
		"exp":   expiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) failLogin(ctx context.Context, email string) error {
	metrics.LoginsTotal.WithLabelValues("rejected").Inc()
	s.recordAudit(ctx, domain.AuthEvent{
		Type:  domain.EventLoginFailed,
		Email: email,
		At:    time.Now().UTC(),
	})
	return domain.ErrInvalidCredentials
}

func (s *AuthService) recordAudit(ctx context.Context, event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", event.Type).Msg("audit write failed")
	}
}

// normalizeEmail lower-cases and trims the address; emails are stored and
// looked up in this form, which makes the unique index case-insensitive in
// effect.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// roleLabel clamps the metric label to the seeded role names; arbitrary
// client input must not grow label cardinality.
func roleLabel(roleName string) string {
	for _, r := range domain.SeededRoles {
		if r == roleName {
			return roleName
		}
	}
	return "unknown"
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "duplicate_email"
	case errors.Is(err, domain.ErrUnknownRole):
		return "unknown_role"
	default:
		return "error"
	}
}
