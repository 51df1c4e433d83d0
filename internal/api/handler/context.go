package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// performs a fast-fail check before any service call: a zero account ID or
// empty role means the middleware did not run on this route.
func ctxIdentity(c echo.Context) (accountID int64, email, role string, err error) {
	accountID, _ = c.Get("account_id").(int64)
	role, _ = c.Get("role").(string)
	if accountID == 0 || role == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	email, _ = c.Get("email").(string)
	return accountID, email, role, nil
}
