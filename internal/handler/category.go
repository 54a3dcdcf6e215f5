package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/repository"
)

// CategoryHandler serves the category CRUD endpoints. Reads are public;
// mutations are mounted behind the admin middleware by the router.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(r *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: r}
}

// parseID converts a path parameter into a numeric id.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List handles GET /categories: every category with its products. An empty
// catalog is an empty array, not an error.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.Categories.ListWithProducts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not load categories"})
	}
	return c.JSON(http.StatusOK, categories)
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	category, err := h.Categories.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not load category"})
	}
	return c.JSON(http.StatusOK, category)
}

// Create handles POST /categories (admin only).
func (h *CategoryHandler) Create(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	category, err := h.Categories.Create(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "The category already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not create category"})
	}
	return c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /categories/:id (admin only). Products under the
// category are removed by the cascade constraint.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete category"})
	}
	return c.NoContent(http.StatusNoContent)
}
