package repository

import (
	"context"
	"database/sql"

	"github.com/Ninjabel/SetupCreator/internal/model"
)

// SetupRepo encapsulates database queries for user-owned setups and their
// product links.
type SetupRepo struct{ DB *sql.DB }

func NewSetupRepo(db *sql.DB) *SetupRepo { return &SetupRepo{DB: db} }

// Create stores a setup and its product links in one transaction and
// returns the generated setup id. Product ids are not validated here;
// the foreign key constraint rejects links to unknown products.
func (r *SetupRepo) Create(ctx context.Context, name string, userID uint64, productIDs []uint64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO setups (name, user_id) VALUES (?,?)", name, userID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, pid := range productIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO setup_products (setup_id, product_id) VALUES (?,?)",
			id, pid); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteOwned removes a setup only when it belongs to the given user.
// Ownership is enforced by query scoping: a setup owned by someone else is
// indistinguishable from a missing one and yields ErrNotFound.
func (r *SetupRepo) DeleteOwned(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM setups WHERE id=? AND user_id=?", id, userID)
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

// ListForOwner returns every setup owned by the user, each with its linked
// products.
func (r *SetupRepo) ListForOwner(ctx context.Context, userID uint64) ([]model.Setup, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,user_id FROM setups WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Setup
	index := map[uint64]int{}
	for rows.Next() {
		var s model.Setup
		if err := rows.Scan(&s.ID, &s.Name, &s.UserID); err != nil {
			return nil, err
		}
		s.Products = []model.Product{}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	prows, err := r.DB.QueryContext(ctx, `
		SELECT sp.setup_id, p.id, p.name, p.category_id, p.ceneo_id,
		       p.price, p.photo_url, p.shop_url, p.shop_image, p.is_promoted
		FROM setup_products sp
		JOIN setups s ON s.id = sp.setup_id
		JOIN products p ON p.id = sp.product_id
		WHERE s.user_id=? ORDER BY sp.setup_id, p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var setupID uint64
		var p model.Product
		if err := prows.Scan(&setupID, &p.ID, &p.Name, &p.CategoryID, &p.CeneoID,
			&p.Price, &p.PhotoURL, &p.ShopURL, &p.ShopImage, &p.IsPromoted); err != nil {
			return nil, err
		}
		if i, ok := index[setupID]; ok {
			out[i].Products = append(out[i].Products, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
