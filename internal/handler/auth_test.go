package handler

// Validation paths are rejected at the handler boundary before any store
// access, so these tests run without a database.

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/config"
)

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler(config.Config{AuthSecret: "a", RefreshSecret: "r", AccessTTLMin: 15}, nil, nil)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler()
	for _, body := range []string{
		`{"email":"not-an-email","password":"password123"}`,
		`{"email":"","password":"password123"}`,
		`{"email":"user@example.com","password":""}`,
		`not json`,
	} {
		rec := postJSON(t, h.Register, "/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid input") {
			t.Fatalf("body %q: missing message, got %s", body, rec.Body.String())
		}
	}
}

func TestLoginRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler()
	rec := postJSON(t, h.Login, "/auth/login", `{"email":"","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestRefreshRequiresToken(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler()
	rec := postJSON(t, h.Refresh, "/auth/token", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Refresh Token is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLogoutRequiresToken(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler()
	rec := postJSON(t, h.Logout, "/auth/logout", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}
