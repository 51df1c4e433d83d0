package service

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
	"github.com/farmlink/auth-service/internal/metrics"
)

// LoginPath is where unauthorized callers are redirected. Clients replace
// history on this redirect so back-navigation cannot reach the protected view.
const LoginPath = "/login"

// Decision is the outcome of one guard evaluation.
type Decision struct {
	State     domain.GuardState
	SessionID string
	AccountID int64
	Email     string
	RoleName  string
	// Redirect is set when State is GuardUnauthorized.
	Redirect string
}

// SessionGuard gates access to protected views. Every evaluation starts from
// the Checking state and re-derives the caller's identity and role from the
// session store and the account table; nothing is cached across evaluations,
// and the role claim inside the token is never trusted for authorization.
type SessionGuard struct {
	sessions  ports.SessionStore
	accounts  ports.AccountStore
	jwtSecret string
	log       zerolog.Logger
}

func NewSessionGuard(sessions ports.SessionStore, accounts ports.AccountStore, jwtSecret string, log zerolog.Logger) *SessionGuard {
	return &SessionGuard{sessions: sessions, accounts: accounts, jwtSecret: jwtSecret, log: log}
}

// Evaluate runs the guard state machine for one request. Transitions:
//
//	Checking → Unauthorized   no token, bad token, revoked session,
//	                          account gone, or role not in allowedRoles
//	Checking → Authorized     session valid and role permitted
//
// An empty allowedRoles list admits any authenticated caller. Lookup failures
// resolve to Unauthorized rather than propagating; they are logged here.
func (g *SessionGuard) Evaluate(ctx context.Context, token string, allowedRoles []string) Decision {
	decision := g.check(ctx, token, allowedRoles)
	metrics.GuardDecisionsTotal.WithLabelValues(string(decision.State)).Inc()
	return decision
}

func (g *SessionGuard) check(ctx context.Context, token string, allowedRoles []string) Decision {
	unauthorized := Decision{State: domain.GuardUnauthorized, Redirect: LoginPath}
	if token == "" {
		return unauthorized
	}

	sessionID, err := g.parseSessionID(token)
	if err != nil {
		return unauthorized
	}

	sess, err := g.sessions.Find(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			g.log.Warn().Err(err).Msg("session lookup failed")
		}
		return unauthorized
	}

	acct, err := g.accounts.FindByID(ctx, sess.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			g.log.Warn().Err(err).Int64("account_id", sess.AccountID).Msg("account lookup failed")
		}
		return unauthorized
	}

	if len(allowedRoles) > 0 && !containsRole(allowedRoles, acct.RoleName) {
		return unauthorized
	}

	return Decision{
		State:     domain.GuardAuthorized,
		SessionID: sess.ID,
		AccountID: acct.ID,
		Email:     acct.Email,
		RoleName:  acct.RoleName,
	}
}

// SessionID extracts the session identifier from a token without touching any
// store. Used by logout, which revokes whatever the token points at.
func (g *SessionGuard) SessionID(token string) (string, error) {
	return g.parseSessionID(token)
}

func (g *SessionGuard) parseSessionID(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}

	id, _ := claims["jti"].(string)
	if id == "" {
		return "", domain.ErrSessionNotFound
	}
	return id, nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
