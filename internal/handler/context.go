package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tennistrivia/internal/model"
)

const currentUserKey = "currentUser"

// SetCurrentUser attaches the resolved identity to the request context. The
// auth gate calls this after verifying the bearer token.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated user attached by the auth gate.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}
