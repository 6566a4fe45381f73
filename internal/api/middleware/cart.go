package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderCartID carries the anonymous cart id between requests.
	HeaderCartID = "X-Cart-ID"
	KeyCartID    = "cart_id"
)

// CartSession resolves the caller's cart id, minting one when the header is
// missing or malformed, and echoes it back on the response.
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderCartID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Set(KeyCartID, id)
			c.Response().Header().Set(HeaderCartID, id)
			return next(c)
		}
	}
}
