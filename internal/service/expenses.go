package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/report"
	"github.com/guttosm/verdupulse/internal/storage"
)

// ExpenseService manages expenses.
type ExpenseService interface {
	List(ctx context.Context) ([]models.Expense, error)
	ListWindow(ctx context.Context, w report.Window) ([]models.Expense, error)
	Create(ctx context.Context, e *models.Expense) error
}

type expenseService struct {
	expenses storage.ExpenseRepository
}

func NewExpenseService(expenses storage.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) List(ctx context.Context) ([]models.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *expenseService) ListWindow(ctx context.Context, w report.Window) ([]models.Expense, error) {
	return s.expenses.ListBetween(ctx, w.From, w.To)
}

func (s *expenseService) Create(ctx context.Context, e *models.Expense) error {
	if !e.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !e.Category.Valid() {
		return fmt.Errorf("unknown expense category %q", e.Category)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return s.expenses.Insert(ctx, e)
}
