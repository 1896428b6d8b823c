package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// ProductRepository defines the DB contract for the product catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	ListAvailable(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, unit_price, unit, available, COALESCE(notes, ''), created_at`

// List returns the whole catalog ordered by name.
func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, fmt.Sprintf(`SELECT %s FROM products ORDER BY name`, productColumns))
}

// ListAvailable returns only products offered in order-entry flows.
func (r *productRepository) ListAvailable(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, fmt.Sprintf(`SELECT %s FROM products WHERE available ORDER BY name`, productColumns))
}

func (r *productRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Unit, &p.Available, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns), id,
	).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Unit, &p.Available, &p.Notes, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Insert(ctx context.Context, p *models.Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, unit_price, unit, available, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, p.ID, p.Name, p.UnitPrice, p.Unit, p.Available, nullable(p.Notes)).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *models.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, unit_price = $3, unit = $4, available = $5, notes = $6
		WHERE id = $1
	`, p.ID, p.Name, p.UnitPrice, p.Unit, p.Available, nullable(p.Notes))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res)
}
