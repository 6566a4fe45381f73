package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeySessionID = "sid"
	KeyUserID    = "user_id"
	KeyRole      = "role"
	KeyIdentity  = "identity"
)

// SessionResolver rehydrates the identity behind a session id.
type SessionResolver interface {
	Current(ctx context.Context, sid string) (*domain.Identity, error)
}

// Auth validates the JWT, resolves its session and injects the identity
// into context. A token whose session was logged out is rejected.
func Auth(jwtSecret string, sessions SessionResolver) echo.MiddlewareFunc {
	return authenticate(jwtSecret, sessions, true)
}

// OptionalAuth behaves like Auth when a token is present and lets anonymous
// requests through untouched.
func OptionalAuth(jwtSecret string, sessions SessionResolver) echo.MiddlewareFunc {
	return authenticate(jwtSecret, sessions, false)
}

func authenticate(jwtSecret string, sessions SessionResolver, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if !required {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			user, err := sessions.Current(c.Request().Context(), sid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(KeySessionID, sid)
			c.Set(KeyUserID, user.ID)
			c.Set(KeyRole, user.Role)
			c.Set(KeyIdentity, user)

			return next(c)
		}
	}
}
