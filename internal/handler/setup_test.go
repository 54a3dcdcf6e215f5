package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/middleware"
	"github.com/Ninjabel/SetupCreator/internal/model"
	"github.com/Ninjabel/SetupCreator/internal/repository"
)

// fakeSetupStore returns canned data so handler branches can be exercised
// without a database.
type fakeSetupStore struct {
	setups    []model.Setup
	createID  uint64
	deleteErr error
}

func (f *fakeSetupStore) Create(ctx context.Context, name string, userID uint64, productIDs []uint64) (uint64, error) {
	return f.createID, nil
}

func (f *fakeSetupStore) DeleteOwned(ctx context.Context, id, userID uint64) error {
	return f.deleteErr
}

func (f *fakeSetupStore) ListForOwner(ctx context.Context, userID uint64) ([]model.Setup, error) {
	return f.setups, nil
}

func setupContext(t *testing.T, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.CtxUserID, userID)
	}
	return c, rec
}

func TestSetupSaveWithoutIdentity(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(nil)
	c, rec := setupContext(t, http.MethodPost, "/setups/save",
		`{"name":"My Rig","products":[1,2]}`, 0)
	if err := h.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestSetupSaveRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(nil)
	for _, body := range []string{
		`{"name":"","products":[1]}`,
		`{"name":"My Rig"}`,
		`{"name":"My Rig","products":"p1"}`,
	} {
		c, rec := setupContext(t, http.MethodPost, "/setups/save", body, 7)
		if err := h.Save(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status %d, want 400", body, rec.Code)
		}
	}
}

// A user with zero setups gets 404, not an empty array.
func TestSetupListEmptyIsNotFound(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(&fakeSetupStore{setups: []model.Setup{}})
	c, rec := setupContext(t, http.MethodGet, "/setups", "", 7)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestSetupListReturnsOwnedSetups(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(&fakeSetupStore{setups: []model.Setup{
		{ID: 3, Name: "My Rig", UserID: 7, Products: []model.Product{}},
	}})
	c, rec := setupContext(t, http.MethodGet, "/setups", "", 7)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got []model.Setup
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].Name != "My Rig" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

// Deleting someone else's setup is indistinguishable from a missing one.
func TestSetupDeleteNotOwnedIsNotFound(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(&fakeSetupStore{deleteErr: repository.ErrNotFound})
	c, rec := setupContext(t, http.MethodDelete, "/setups/delete/3", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestSetupDeleteRejectsBadID(t *testing.T) {
	t.Parallel()

	h := NewSetupHandler(nil)
	c, rec := setupContext(t, http.MethodDelete, "/setups/delete/abc", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}
