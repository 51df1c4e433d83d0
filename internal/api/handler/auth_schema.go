package handler

// Request/response types for the auth endpoints. These are intentionally
// separate from ports/domain types so the JSON contract is owned by the
// transport layer.

type registerRequest struct {
	Email     string `json:"email"     validate:"required"`
	Password  string `json:"password"  validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleName  string `json:"role_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResult struct {
	AccountID int64  `json:"accountId"`
	Email     string `json:"email"`
}

type registerResponse struct {
	Message string         `json:"message"`
	Result  registerResult `json:"result"`
}

type loginResult struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Result  loginResult `json:"result"`
}

type sessionResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}
