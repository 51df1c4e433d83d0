package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler backs the protected dashboard shell. The interesting work
// happens in the middleware chain; by the time a request lands here the
// session guard has already authorized it.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role_name"`
}

// Overview confirms access and echoes the resolved identity.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	accountID, email, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Message: "dashboard ready",
		ID:      accountID,
		Email:   email,
		Role:    role,
	})
}
