package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/model"
	"github.com/Ninjabel/SetupCreator/internal/utils"
)

const (
	testAuthSecret    = "test-auth-secret"
	testRefreshSecret = "test-refresh-secret"
)

func runChain(t *testing.T, mws []echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler chain error: %v", err)
	}
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	t.Parallel()

	rec, _ := runChain(t, []echo.MiddlewareFunc{JWTAuth(testAuthSecret)}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	t.Parallel()

	rec, _ := runChain(t, []echo.MiddlewareFunc{JWTAuth(testAuthSecret)}, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidTokenInjectsIdentity(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken(testAuthSecret, 9, model.RoleAdmin, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	rec, c := runChain(t, []echo.MiddlewareFunc{JWTAuth(testAuthSecret)}, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	id, ok := UserID(c)
	if !ok || id != 9 {
		t.Fatalf("user id: got %d ok=%v", id, ok)
	}
	if role, _ := c.Get(CtxRole).(model.Role); role != model.RoleAdmin {
		t.Fatalf("role: got %q", role)
	}
}

// A refresh token presented as an access token must be rejected: the two
// kinds are signed with different secrets.
func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	t.Parallel()

	refresh, err := utils.NewRefreshToken(testRefreshSecret, 9, model.RoleUser)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	rec, _ := runChain(t, []echo.MiddlewareFunc{JWTAuth(testAuthSecret)}, "Bearer "+refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireRoleForbidsUser(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken(testAuthSecret, 3, model.RoleUser, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	mws := []echo.MiddlewareFunc{JWTAuth(testAuthSecret), RequireRole(model.RoleAdmin)}
	rec, _ := runChain(t, mws, "Bearer "+tok.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken(testAuthSecret, 3, model.RoleAdmin, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	mws := []echo.MiddlewareFunc{JWTAuth(testAuthSecret), RequireRole(model.RoleAdmin)}
	rec, _ := runChain(t, mws, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}

func TestRequireRoleMissingIdentity(t *testing.T) {
	t.Parallel()

	rec, _ := runChain(t, []echo.MiddlewareFunc{RequireRole(model.RoleAdmin)}, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
}
