package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// CustomerRepository defines the DB contract for the customer roster.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, phone, COALESCE(address, ''), COALESCE(notes, ''), created_at`

// List returns the whole roster ordered by name.
func (r *customerRepository) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM customers ORDER BY name`, customerColumns))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns), id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *customerRepository) Insert(ctx context.Context, c *models.Customer) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, name, phone, address, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, c.ID, c.Name, c.Phone, nullable(c.Address), nullable(c.Notes)).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, c *models.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, notes = $5
		WHERE id = $1
	`, c.ID, c.Name, c.Phone, nullable(c.Address), nullable(c.Notes))
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return requireRow(res)
}

// Delete removes a customer. Customers still referenced by orders are
// protected by the schema; the violation surfaces as ErrConflict.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("delete customer: %w", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return requireRow(res)
}
