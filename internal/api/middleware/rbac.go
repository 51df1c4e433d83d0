package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmlink/auth-service/internal/core/service"
)

// RBAC enforces a role allow-list on routes already behind Session. The role
// it reads was re-resolved server-side by the guard, never taken from client
// state.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusUnauthorized, unauthorizedResponse{
					Message:  "unauthorized",
					Redirect: service.LoginPath,
				})
			}
			return next(c)
		}
	}
}
