package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportSummary holds every derived figure the finance screen needs for
// one date window. Produced by the report package; never stored.
type ReportSummary struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	TotalExpense decimal.Decimal   `json:"total_expense"`
	NetProfit    decimal.Decimal   `json:"net_profit"`
	// Loss marks a negative profit so consumers can render it as a
	// warning state rather than inspecting the sign themselves.
	Loss         bool              `json:"loss"`
	RevenueByDay []DailyRevenue    `json:"revenue_by_day"`
	TopProducts  []ProductSales    `json:"top_products"`
	ByCategory   []CategoryExpense `json:"expenses_by_category"`
}

// DailyRevenue is one point of the per-day revenue series. Days with no
// orders are present with zero revenue; the series never skips a day.
type DailyRevenue struct {
	Day     time.Time       `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// ProductSales is one row of the top-products ranking. Keyed by product
// id; the display name is carried as an attribute so products sharing a
// name are never silently merged.
type ProductSales struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryExpense is the expense total for one category in a window.
type CategoryExpense struct {
	Category ExpenseCategory `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DashboardStats carries the landing-screen KPIs.
type DashboardStats struct {
	RevenueToday   decimal.Decimal `json:"revenue_today"`
	ActiveOrders   int             `json:"active_orders"`
	TotalCustomers int             `json:"total_customers"`
	WeekProfit     decimal.Decimal `json:"week_profit"`
	WeekLoss       bool            `json:"week_loss"`
	RevenueByDay   []DailyRevenue  `json:"revenue_by_day"`
	TopProducts    []ProductSales  `json:"top_products"`
}
