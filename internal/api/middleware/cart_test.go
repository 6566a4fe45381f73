package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func runCartSession(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(HeaderCartID, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	err := CartSession()(func(c echo.Context) error {
		got, _ = c.Get(KeyCartID).(string)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return got, rec
}

func TestCartSession_KeepsValidID(t *testing.T) {
	id := uuid.NewString()
	got, rec := runCartSession(t, id)
	if got != id || rec.Header().Get(HeaderCartID) != id {
		t.Fatalf("expected %s to be kept, got %s", id, got)
	}
}

func TestCartSession_MintsWhenMissingOrMalformed(t *testing.T) {
	for _, header := range []string{"", "../../etc/passwd"} {
		got, rec := runCartSession(t, header)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected a minted uuid for %q, got %q", header, got)
		}
		if rec.Header().Get(HeaderCartID) != got {
			t.Fatalf("expected minted id echoed")
		}
	}
}
