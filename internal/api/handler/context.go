package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/api/middleware"
	"github.com/mgluxury/boutique/internal/core/domain"
)

// cartID returns the id resolved by the CartSession middleware.
func cartID(c echo.Context) string {
	id, _ := c.Get(middleware.KeyCartID).(string)
	return id
}

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// absence means the route was mounted without Auth.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	user, _ := c.Get(middleware.KeyIdentity).(*domain.Identity)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// ctxUserID is the signed-in user's id, or "" for anonymous requests.
func ctxUserID(c echo.Context) string {
	id, _ := c.Get(middleware.KeyUserID).(string)
	return id
}
