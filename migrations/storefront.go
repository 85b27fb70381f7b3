package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

type CreateStorefrontSchema struct{}

func (m *CreateStorefrontSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS storefront;`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create schema storefront: %w", err)
	}
	log.Println("Migration 'storefront schema' completed successfully.")
	return nil
}

type CreateProductsTable struct{}

func (m *CreateProductsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "storefront.products"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS storefront.products (
		product_id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category VARCHAR(255) NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		image2 TEXT NOT NULL DEFAULT '',
		image3 TEXT NOT NULL DEFAULT ''
	);`
	if err := executeAndMarkMigration(db, query, "storefront.products"); err != nil {
		return err
	}
	log.Println("Migration 'storefront.products' completed successfully.")
	return nil
}

type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "storefront.cart_items"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS storefront.cart_items (
		product_id VARCHAR(64) PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		price DOUBLE PRECISION NOT NULL,
		image TEXT NOT NULL DEFAULT ''
	);`
	if err := executeAndMarkMigration(db, query, "storefront.cart_items"); err != nil {
		return err
	}
	log.Println("Migration 'storefront.cart_items' completed successfully.")
	return nil
}
