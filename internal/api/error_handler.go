package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "fields": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verr.Fields}
	}

	var uerr *domain.UploadError
	if errors.As(err, &uerr) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("image host rejected upload")
		return http.StatusBadGateway, errorResponse{Error: uerr.Error()}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, errorResponse{Error: "product not found"}
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, errorResponse{Error: "category not found"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorResponse{Error: "order not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Email ou mot de passe incorrect."}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrDuplicateCategory):
		return http.StatusConflict, errorResponse{Error: "category already exists"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity, errorResponse{Error: "Votre panier est vide."}
	case errors.Is(err, ports.ErrQueueClosed):
		return http.StatusServiceUnavailable, errorResponse{Error: "event queue unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
