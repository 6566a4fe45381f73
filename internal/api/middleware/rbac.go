package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// RBAC restricts a route group to the given roles. It must run after Auth;
// an anonymous caller is reported as unauthenticated, a signed-in caller
// with another role as forbidden. Both render through the HTTP error handler.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(KeyRole).(string)
			if role == "" {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
