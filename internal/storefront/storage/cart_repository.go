package storage

import (
	"context"
	"database/sql"

	"storefront_api/internal/storefront/business/models"
)

// CartRepository holds the pre-checkout cart lines. One row per product;
// a row with quantity <= 0 never exists (enforced here and by the table
// CHECK constraint).
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetAll(ctx context.Context) ([]models.CartLine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_id, product_name, quantity, price, image FROM storefront.cart_items ORDER BY product_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Price, &l.Image); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *CartRepository) GetByProductID(ctx context.Context, productID string) (*models.CartLine, error) {
	var l models.CartLine
	err := r.db.QueryRowContext(ctx,
		"SELECT product_id, product_name, quantity, price, image FROM storefront.cart_items WHERE product_id = $1",
		productID).Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Price, &l.Image)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpsertDelta merges by addition in a single statement, so two concurrent
// adds for the same product cannot lose an update.
func (r *CartRepository) UpsertDelta(ctx context.Context, line models.CartLine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO storefront.cart_items AS ci (product_id, product_name, quantity, price, image)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE SET
			quantity = ci.quantity + EXCLUDED.quantity`,
		line.ProductID, line.ProductName, line.Quantity, line.Price, line.Image)
	return err
}

func (r *CartRepository) SetQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE storefront.cart_items SET quantity = $2 WHERE product_id = $1", productID, quantity)
	return err
}

func (r *CartRepository) Delete(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM storefront.cart_items WHERE product_id = $1", productID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM storefront.cart_items")
	return err
}

func (r *CartRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity * price), 0) FROM storefront.cart_items").Scan(&total)
	return total, err
}
