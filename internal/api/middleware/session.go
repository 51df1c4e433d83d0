package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/service"
)

// unauthorizedResponse tells the client where to send the user. Clients must
// replace history on this redirect so back-navigation cannot return to the
// protected view.
type unauthorizedResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// Session runs the session guard on every request: it extracts the bearer
// token, re-derives the caller's identity and role from the session store and
// the account table, and injects them into context. Nothing is cached between
// requests, so a role change or revocation takes effect on the next
// navigation.
func Session(guard *service.SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.Evaluate(c.Request().Context(), bearerToken(c), nil)
			if decision.State != domain.GuardAuthorized {
				return c.JSON(http.StatusUnauthorized, unauthorizedResponse{
					Message:  "unauthorized",
					Redirect: decision.Redirect,
				})
			}

			c.Set("session_id", decision.SessionID)
			c.Set("account_id", decision.AccountID)
			c.Set("email", decision.Email)
			c.Set("role", decision.RoleName)

			return next(c)
		}
	}
}

// bearerToken returns the token from the Authorization header, or "" when the
// header is missing or malformed. The guard treats "" as no session.
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
