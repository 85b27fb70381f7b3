package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"storefront_api/internal/storefront/business/models"
)

// ProductRepository is the local read cache of the remote catalog. It is
// the source of truth for what gets displayed, never for remote state.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "product_id, name, description, price, stock, category, image, image2, image3"

func scanProduct(scanner interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	err := scanner.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Image, &p.Image2, &p.Image3)
	return p, err
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM storefront.products ORDER BY product_id", productColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID returns nil without error when the product is not cached.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM storefront.products WHERE product_id = $1", productColumns), id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs fetches a batch of cached products, e.g. to resolve purchase
// item product ids into names and images.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM storefront.products WHERE product_id = ANY($1)", productColumns), pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[p.ID] = p
	}
	return found, rows.Err()
}

const upsertProduct = `
	INSERT INTO storefront.products (product_id, name, description, price, stock, category, image, image2, image3)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (product_id) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		price = EXCLUDED.price,
		stock = EXCLUDED.stock,
		category = EXCLUDED.category,
		image = EXCLUDED.image,
		image2 = EXCLUDED.image2,
		image3 = EXCLUDED.image3`

func (r *ProductRepository) Upsert(ctx context.Context, p models.Product) error {
	_, err := r.db.ExecContext(ctx, upsertProduct,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Image, p.Image2, p.Image3)
	return err
}

// ReplaceAll implements the full-replace sync: delete-all then insert-all
// inside one transaction. Stale products removed remotely disappear
// locally; readers never observe a mix of old and new.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM storefront.products"); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, upsertProduct)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Image, p.Image2, p.Image3); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM storefront.products WHERE product_id = $1", id)
	return err
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM storefront.products").Scan(&count)
	return count, err
}
