package domain

import "time"

// Session is the server-side record behind an issued token. The token carries
// the session ID (jti); the Redis entry keyed by that ID is the source of
// truth, so deleting it revokes the token before its expiry.
type Session struct {
	ID        string    `json:"id"`
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	RoleName  string    `json:"role_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GuardState is the state of the session guard for one protected request.
type GuardState string

const (
	GuardChecking     GuardState = "checking"
	GuardAuthorized   GuardState = "authorized"
	GuardUnauthorized GuardState = "unauthorized"
)

// AuthEvent is one entry of the authentication audit trail.
type AuthEvent struct {
	Type      string    `json:"type"`
	AccountID int64     `json:"account_id,omitempty"`
	Email     string    `json:"email"`
	RoleName  string    `json:"role_name,omitempty"`
	At        time.Time `json:"at"`
}

// Audit event types.
const (
	EventRegistered  = "registered"
	EventLogin       = "login"
	EventLoginFailed = "login_failed"
	EventLogout      = "logout"
)
