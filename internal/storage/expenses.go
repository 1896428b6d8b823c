package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// ExpenseRepository defines the DB contract for expenses.
type ExpenseRepository interface {
	List(ctx context.Context) ([]models.Expense, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error)
	Insert(ctx context.Context, e *models.Expense) error
}

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, name, category, amount, expense_date, COALESCE(details, ''), created_at`

// List returns all expenses, newest first.
func (r *expenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	return r.list(ctx, fmt.Sprintf(`SELECT %s FROM expenses ORDER BY expense_date DESC`, expenseColumns))
}

// ListBetween returns expenses whose date falls inside the inclusive
// [from, to] range, oldest first.
func (r *expenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	return r.list(ctx, fmt.Sprintf(
		`SELECT %s FROM expenses WHERE expense_date >= $1 AND expense_date <= $2 ORDER BY expense_date`,
		expenseColumns,
	), from, to)
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Amount, &e.Date, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expenseRepository) Insert(ctx context.Context, e *models.Expense) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (id, name, category, amount, expense_date, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, e.ID, e.Name, e.Category, e.Amount, e.Date, nullable(e.Details)).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}
