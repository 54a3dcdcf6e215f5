package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for every table the service uses, in dependency
// order. Statements are idempotent so the migration can run repeatedly.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		role          ENUM('USER','ADMIN') NOT NULL DEFAULT 'USER',
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token      VARCHAR(512)    NOT NULL,
		expires_at DATETIME        NOT NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_token (token),
		KEY idx_refresh_tokens_expires (expires_at),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255)    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_categories_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(255)    NOT NULL,
		category_id BIGINT UNSIGNED NOT NULL,
		ceneo_id    VARCHAR(64)     NOT NULL DEFAULT '',
		price       BIGINT          NULL,
		photo_url   TEXT            NULL,
		shop_url    TEXT            NULL,
		shop_image  TEXT            NULL,
		is_promoted TINYINT(1)      NOT NULL DEFAULT 0,
		PRIMARY KEY (id),
		UNIQUE KEY uq_products_category_name (category_id, name),
		KEY idx_products_category (category_id),
		CONSTRAINT fk_products_category FOREIGN KEY (category_id)
			REFERENCES categories (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS setups (
		id      BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name    VARCHAR(255)    NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_setups_user (user_id),
		CONSTRAINT fk_setups_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS setup_products (
		setup_id   BIGINT UNSIGNED NOT NULL,
		product_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (setup_id, product_id),
		CONSTRAINT fk_setup_products_setup FOREIGN KEY (setup_id)
			REFERENCES setups (id) ON DELETE CASCADE,
		CONSTRAINT fk_setup_products_product FOREIGN KEY (product_id)
			REFERENCES products (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}

// seedCategories mirrors the starter catalog the project ships with. Every
// product points at the same sample listing on the external site.
var seedCategories = map[string][]string{
	"Karty graficzne": {"RTX 3080", "RTX 3070", "RTX 3060 Ti"},
	"Procesory":       {"i9-10900K", "i7-10700K", "i5-10600K"},
	"Płyty główne":    {"Z490", "B460", "H410"},
	"Pamięci RAM":     {"DDR4 16GB", "DDR4 32GB", "DDR4 64GB"},
}

const seedCeneoID = "103514745"

// Seed inserts an admin account and a starter catalog. Existing rows are
// left untouched, so seeding an already populated database is safe.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPasswordHash string) error {
	if _, err := db.ExecContext(ctx,
		"INSERT IGNORE INTO users (email, password_hash, role) VALUES (?,?,'ADMIN')",
		adminEmail, adminPasswordHash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	for name, products := range seedCategories {
		res, err := db.ExecContext(ctx, "INSERT IGNORE INTO categories (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		catID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if catID == 0 {
			// Already present; look the id up for the product inserts.
			if err := db.QueryRowContext(ctx,
				"SELECT id FROM categories WHERE name=?", name).Scan(&catID); err != nil {
				return fmt.Errorf("seed category lookup %q: %w", name, err)
			}
		}
		for _, p := range products {
			if _, err := db.ExecContext(ctx,
				"INSERT IGNORE INTO products (name, category_id, ceneo_id) VALUES (?,?,?)",
				p, catID, seedCeneoID); err != nil {
				return fmt.Errorf("seed product %q: %w", p, err)
			}
		}
	}
	return nil
}
