package ports

import "context"

// RegisterInput carries the fields accepted by the registration endpoint.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	RoleName  string
}

// RegisterResult is what a successful registration returns. The password hash
// is never part of any result.
type RegisterResult struct {
	AccountID int64  `json:"accountId"`
	Email     string `json:"email"`
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	AccountID int64  `json:"id"`
	Email     string `json:"email"`
	RoleName  string `json:"role_name"`
	Token     string `json:"-"`
}

// AuthService implements account provisioning and authentication.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}
