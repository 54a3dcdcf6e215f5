package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/queue"
	"github.com/Ninjabel/SetupCreator/internal/repository"
	"github.com/Ninjabel/SetupCreator/internal/scraper"
	queue_publisher "github.com/Ninjabel/SetupCreator/internal/service"
)

// PartHandler serves the product endpoints. Creating a product triggers a
// single synchronization against the external site; the bulk update
// endpoint refreshes the whole catalog through a bounded worker pool.
type PartHandler struct {
	Products   *repository.ProductRepo
	Categories *repository.CategoryRepo
	Scraper    *scraper.Scraper
	Workers    int
}

func NewPartHandler(p *repository.ProductRepo, cat *repository.CategoryRepo, s *scraper.Scraper, workers int) *PartHandler {
	return &PartHandler{Products: p, Categories: cat, Scraper: s, Workers: workers}
}

// List handles GET /parts: the catalog grouped by category. Unlike
// GET /categories this endpoint reports 404 when the catalog is empty,
// mirroring the storefront contract.
func (h *PartHandler) List(c echo.Context) error {
	categories, err := h.Categories.ListWithProducts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not load products"})
	}
	if len(categories) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No products found"})
	}
	return c.JSON(http.StatusOK, categories)
}

// Get handles GET /parts/:id.
func (h *PartHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	product, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not load product"})
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /parts (admin only). The new product is synchronized
// once before it is stored, so a listed product always carries whatever
// details the external site had at creation time.
func (h *PartHandler) Create(c echo.Context) error {
	var body struct {
		Name       string `json:"name"`
		CeneoID    string `json:"ceneoId"`
		CategoryID uint64 `json:"categoryId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	name := strings.TrimSpace(body.Name)
	ceneoID := strings.TrimSpace(body.CeneoID)
	if name == "" || ceneoID == "" || body.CategoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}

	details, err := h.Scraper.Scrape(c.Request().Context(), ceneoID)
	if err != nil {
		log.Printf("product create: scrape %s failed: %v", ceneoID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not create product"})
	}
	product, err := h.Products.Create(c.Request().Context(), name, body.CategoryID, ceneoID, details)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not create product"})
	}
	return c.JSON(http.StatusCreated, product)
}

// Delete handles DELETE /parts/:id (admin only).
func (h *PartHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"productId": id})
}

// UpdateAll handles POST /parts/update (admin only): refresh every product
// that has an external identifier. Work runs on a bounded pool and each
// product's outcome is tracked independently, so one dead listing does not
// abort the rest of the run.
func (h *PartHandler) UpdateAll(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := h.Products.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			echo.Map{"success": false, "message": "Products details update failed"})
	}

	items := make([]scraper.Item, 0, len(products))
	for _, p := range products {
		if p.CeneoID != "" {
			items = append(items, scraper.Item{ProductID: p.ID, CeneoID: p.CeneoID})
		}
	}

	start := time.Now()
	results := h.Scraper.SyncAll(ctx, items, h.Workers,
		func(ctx context.Context, productID uint64, d scraper.Details) error {
			return h.Products.UpdateDetails(ctx, productID, d)
		})

	var failedIDs []string
	for _, r := range results {
		if r.Err != nil {
			log.Printf("bulk sync: product %d (%s): %v", r.ProductID, r.CeneoID, r.Err)
			failedIDs = append(failedIDs, r.CeneoID)
		}
	}
	updated := len(results) - len(failedIDs)

	event := queue.CatalogSyncedEvent{
		Total:      len(items),
		Updated:    updated,
		Failed:     len(failedIDs),
		FailedIDs:  failedIDs,
		DurationMS: time.Since(start).Milliseconds(),
		SyncedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	// Reporting is best effort; a down broker must not fail the update.
	_ = queue_publisher.PublishCatalogSynced(ctx, event)

	if len(items) > 0 && updated == 0 {
		return c.JSON(http.StatusInternalServerError,
			echo.Map{"success": false, "message": "Products details update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Products details successfully updated",
		"updated": updated,
		"failed":  len(failedIDs),
	})
}

// Promote handles POST /parts/promote/:id (admin only). The flip is
// idempotent.
func (h *PartHandler) Promote(c echo.Context) error {
	return h.setPromoted(c, true)
}

// Unpromote handles POST /parts/unpromote/:id (admin only).
func (h *PartHandler) Unpromote(c echo.Context) error {
	return h.setPromoted(c, false)
}

func (h *PartHandler) setPromoted(c echo.Context, promoted bool) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid input"})
	}
	if err := h.Products.SetPromoted(c.Request().Context(), id, promoted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not update product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"productId": id})
}
