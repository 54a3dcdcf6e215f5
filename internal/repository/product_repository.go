package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ninjabel/SetupCreator/internal/model"
	"github.com/Ninjabel/SetupCreator/internal/scraper"
)

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

// scanProducts runs a product SELECT and scans the rows. The query must
// project the columns in the canonical order used across this package.
func scanProducts(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.CeneoID,
			&p.Price, &p.PhotoURL, &p.ShopURL, &p.ShopImage, &p.IsPromoted); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a product with its initial synchronization details and
// returns the stored record.
func (r *ProductRepo) Create(ctx context.Context, name string, categoryID uint64, ceneoID string, d scraper.Details) (model.Product, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, category_id, ceneo_id, price, photo_url, shop_url, shop_image) VALUES (?,?,?,?,?,?,?)",
		name, categoryID, ceneoID, d.Price, d.PhotoURL, d.ShopURL, d.ShopImage)
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a single product. ErrNotFound when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,category_id,ceneo_id,price,photo_url,shop_url,shop_image,is_promoted FROM products WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.CategoryID, &p.CeneoID,
		&p.Price, &p.PhotoURL, &p.ShopURL, &p.ShopImage, &p.IsPromoted)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// List returns every product in the catalog ordered by id.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	return scanProducts(ctx, r.DB,
		"SELECT id,name,category_id,ceneo_id,price,photo_url,shop_url,shop_image,is_promoted FROM products ORDER BY id")
}

// UpdateDetails overwrites the synchronized fields of a product.
func (r *ProductRepo) UpdateDetails(ctx context.Context, id uint64, d scraper.Details) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET price=?, photo_url=?, shop_url=?, shop_image=? WHERE id=?",
		d.Price, d.PhotoURL, d.ShopURL, d.ShopImage, id)
	return err
}

// SetPromoted flips the promotion flag. The write is idempotent;
// ErrNotFound is decided by row existence, not by rows affected, so
// promoting an already promoted product still succeeds.
func (r *ProductRepo) SetPromoted(ctx context.Context, id uint64, promoted bool) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET is_promoted=? WHERE id=?", promoted, id)
	return err
}

// Delete removes a product by id. ErrNotFound when no row was deleted.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
