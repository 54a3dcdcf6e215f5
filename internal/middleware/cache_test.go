package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/config"
)

func cacheContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/categories/:id")
	return c
}

// Two ids on the same parameterized route must never share a cache entry.
func TestCacheKeyDistinguishesIDs(t *testing.T) {
	t.Parallel()

	k1 := cacheKey("cache", cacheContext(t, "/categories/1"))
	k2 := cacheKey("cache", cacheContext(t, "/categories/2"))
	if k1 == k2 {
		t.Fatalf("cache key collision: /categories/1 and /categories/2 both map to %s", k1)
	}
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	t.Parallel()

	k1 := cacheKey("cache", cacheContext(t, "/categories/7?fields=name"))
	k2 := cacheKey("cache", cacheContext(t, "/categories/7?fields=name"))
	if k1 != k2 {
		t.Fatalf("same request produced different keys: %s vs %s", k1, k2)
	}
	if k3 := cacheKey("cache", cacheContext(t, "/categories/7?fields=price")); k3 == k1 {
		t.Fatal("query string should participate in the key")
	}
}

// Without a Redis client the middleware must hand the request straight to
// the next handler.
func TestCachePassThroughWhenDisabled(t *testing.T) {
	t.Parallel()

	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	if err := h(cacheContext(t, "/categories/1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler was not invoked")
	}
}
