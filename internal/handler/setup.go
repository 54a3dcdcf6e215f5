package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/middleware"
	"github.com/Ninjabel/SetupCreator/internal/model"
	"github.com/Ninjabel/SetupCreator/internal/repository"
)

// SetupStore is the persistence surface the setup endpoints need.
// *repository.SetupRepo satisfies it.
type SetupStore interface {
	Create(ctx context.Context, name string, userID uint64, productIDs []uint64) (uint64, error)
	DeleteOwned(ctx context.Context, id, userID uint64) error
	ListForOwner(ctx context.Context, userID uint64) ([]model.Setup, error)
}

// SetupHandler serves the build-your-own-setup endpoints. Every route
// requires an authenticated user; ownership decides visibility.
type SetupHandler struct {
	Setups SetupStore
}

func NewSetupHandler(r SetupStore) *SetupHandler {
	return &SetupHandler{Setups: r}
}

// Save handles POST /setups/save. Product ids are not checked against the
// catalog here; the store's referential constraints apply.
func (h *SetupHandler) Save(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var body struct {
		Name     string   `json:"name"`
		Products []uint64 `json:"products"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.Products == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}

	id, err := h.Setups.Create(c.Request().Context(), name, userID, body.Products)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not save setup"})
	}
	return c.JSON(http.StatusOK, echo.Map{"setupId": id})
}

// Delete handles DELETE /setups/delete/:id. The lookup is scoped to the
// caller, so a setup owned by someone else reports NotFound rather than
// Forbidden.
func (h *SetupHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	if err := h.Setups.DeleteOwned(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Setup not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete setup"})
	}
	return c.JSON(http.StatusOK, echo.Map{"setupId": id})
}

// List handles GET /setups. A user with zero setups gets 404, not an
// empty array; clients rely on the distinction.
func (h *SetupHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	setups, err := h.Setups.ListForOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not load setups"})
	}
	if len(setups) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Setups not found for the authenticated user"})
	}
	return c.JSON(http.StatusOK, setups)
}
