package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Ninjabel/SetupCreator/internal/model"
)

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// Create inserts a category and returns it with the generated id. A
// duplicate name maps to ErrNameExists.
func (r *CategoryRepo) Create(ctx context.Context, name string) (model.Category, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return model.Category{}, ErrNameExists
		}
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: uint64(id), Name: name}, nil
}

// GetByID fetches a single category together with its products.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.CategoryWithProducts, error) {
	var c model.CategoryWithProducts
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM categories WHERE id=? LIMIT 1", id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CategoryWithProducts{}, ErrNotFound
	}
	if err != nil {
		return model.CategoryWithProducts{}, err
	}
	products, err := scanProducts(ctx, r.DB,
		"SELECT id,name,category_id,ceneo_id,price,photo_url,shop_url,shop_image,is_promoted FROM products WHERE category_id=? ORDER BY id", id)
	if err != nil {
		return model.CategoryWithProducts{}, err
	}
	c.Products = products
	return c, nil
}

// ListWithProducts returns every category with its products, ordered by id.
// Categories without products carry an empty (non-nil) slice so the JSON
// shape stays an array.
func (r *CategoryRepo) ListWithProducts(ctx context.Context) ([]model.CategoryWithProducts, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryWithProducts
	index := map[uint64]int{}
	for rows.Next() {
		var c model.CategoryWithProducts
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		c.Products = []model.Product{}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	products, err := scanProducts(ctx, r.DB,
		"SELECT id,name,category_id,ceneo_id,price,photo_url,shop_url,shop_image,is_promoted FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if i, ok := index[p.CategoryID]; ok {
			out[i].Products = append(out[i].Products, p)
		}
	}
	return out, nil
}

// Delete removes a category by id. Contained products go with it through
// the ON DELETE CASCADE constraint. ErrNotFound when no row was deleted.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
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
