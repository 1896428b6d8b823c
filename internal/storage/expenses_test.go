package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

func TestExpenseRepository_ListBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	repo := &expenseRepository{db: db}

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "name", "category", "amount", "expense_date", "details", "created_at"}).
		AddRow(uuid.New().String(), "fuel", "logistics", "120.00", from.AddDate(0, 0, 1), "", time.Now())

	mock.ExpectQuery(`SELECT .* FROM expenses WHERE expense_date >= \$1 AND expense_date <= \$2`).
		WithArgs(from, to).
		WillReturnRows(rows)

	out, err := repo.ListBetween(context.Background(), from, to)
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(out))
	}
	if out[0].Category != models.CategoryLogistics || !out[0].Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected expense: %+v", out[0])
	}
}

func TestExpenseRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	repo := &expenseRepository{db: db}

	e := &models.Expense{
		ID:       uuid.New(),
		Name:     "crates",
		Category: models.CategoryPurchases,
		Amount:   decimal.NewFromInt(300),
		Date:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`INSERT INTO expenses .* RETURNING created_at`).
		WithArgs(e.ID, e.Name, e.Category, e.Amount, e.Date, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	if err := repo.Insert(context.Background(), e); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if e.CreatedAt.IsZero() {
		t.Fatalf("created_at not populated")
	}
}
