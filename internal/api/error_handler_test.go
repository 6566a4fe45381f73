package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

func render(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	return rec.Code, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"product not found", fmt.Errorf("get: %w", domain.ErrProductNotFound), http.StatusNotFound},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"anonymous", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"duplicate category", fmt.Errorf("create category: %w", domain.ErrDuplicateCategory), http.StatusConflict},
		{"transition", fmt.Errorf("%w: delivered -> pending", domain.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"empty cart", domain.ErrEmptyCart, http.StatusUnprocessableEntity},
		{"upload", fmt.Errorf("upload image: %w", &domain.UploadError{Reason: "invalid key"}), http.StatusBadGateway},
		{"queue closed", fmt.Errorf("batch cut short after 0 of 2 events: %w", ports.ErrQueueClosed), http.StatusServiceUnavailable},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := render(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	verr := domain.NewValidationError("phone", "champ obligatoire")
	verr.Add("name", "champ obligatoire")

	code, body := render(t, fmt.Errorf("submit: %w", verr))
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if len(body.Fields) != 2 || body.Fields["phone"] != "champ obligatoire" {
		t.Fatalf("unexpected fields: %+v", body.Fields)
	}
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	_, body := render(t, errors.New("mongo: connection refused on 10.0.0.3"))
	if body.Error != "internal server error" {
		t.Fatalf("leaked error message: %q", body.Error)
	}
}

func TestErrorHandler_CredentialsMessage(t *testing.T) {
	_, body := render(t, domain.ErrInvalidCredentials)
	if body.Error != "Email ou mot de passe incorrect." {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}
