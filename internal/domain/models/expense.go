package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed expense labels.
type ExpenseCategory string

const (
	CategoryLogistics   ExpenseCategory = "logistics"
	CategoryPurchases   ExpenseCategory = "purchases"
	CategoryAdvertising ExpenseCategory = "advertising"
	CategoryServices    ExpenseCategory = "services"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseCategories returns the fixed label set, in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryLogistics,
		CategoryPurchases,
		CategoryAdvertising,
		CategoryServices,
		CategoryOther,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is an outgoing cost, independent of orders. It is subtracted
// from revenue when computing profit.
type Expense struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  ExpenseCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Details   string          `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
