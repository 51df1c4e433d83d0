package domain

import "errors"

// Role names seeded into the role directory. Role rows are static reference
// data; identifiers are assigned by the database and never change once an
// account references them.
const (
	RoleBuyer        = "buyer"
	RoleFarmer       = "farmer"
	RoleAdmin        = "admin"
	RoleBrgyOfficial = "brgy_official"
	RoleLGUOfficial  = "lgu_official"
)

// SeededRoles lists every role name in the order they are seeded.
var SeededRoles = []string{RoleBuyer, RoleFarmer, RoleAdmin, RoleBrgyOfficial, RoleLGUOfficial}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Account is the authentication identity. Exactly one Profile row belongs to
// each Account; both are always created in the same transaction.
type Account struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	RoleID       int64  `json:"-"`
	RoleName     string `json:"role_name"`
}

// Profile holds the human-facing attributes owned by an Account. First and
// last name may be empty strings but the columns are always present.
type Profile struct {
	ID        int64  `json:"id"`
	AuthID    int64  `json:"auth_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Role is a row of the static role directory.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"role_name"`
}
