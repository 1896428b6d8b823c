// Package report computes the derived figures every screen re-derives
// from raw order, line and expense records: revenue and expense totals,
// net profit, the per-day revenue series, and the top-products ranking.
//
// All functions are pure: no I/O, no state between calls. Callers fetch
// the collections for a window and hand them in. Empty input always
// yields zero values or empty slices, never an error.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// DefaultTopProducts is the ranking size used when a caller passes n <= 0.
const DefaultTopProducts = 5

// UnknownProductLabel is used for lines whose product reference no
// longer resolves. A dangling reference must not abort the aggregation.
const UnknownProductLabel = "unknown product"

// TotalRevenue sums the totals of revenue-eligible orders (confirmed,
// prepared or delivered). Draft and cancelled orders are excluded here
// on every call; eligibility is a business rule, not a store constraint.
func TotalRevenue(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if !o.Status.RevenueEligible() {
			continue
		}
		total = total.Add(o.Total)
	}
	return total
}

// TotalExpense sums the amounts of the given expenses. The date window
// is applied by the caller before invocation.
func TotalExpense(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// NetProfit is revenue minus expense. The result may be negative;
// consumers surface negative profit as a warning state, not an error.
func NetProfit(revenue, expense decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expense)
}

// RevenueByDay groups revenue-eligible orders by the calendar day of
// their creation timestamp in the window's reporting timezone and
// returns one entry per day of the window, ascending. Days without
// orders appear with zero revenue: the time-series chart must never
// silently omit a day. Orders created outside the window are ignored.
func RevenueByDay(orders []models.Order, w Window) []models.DailyRevenue {
	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	byDay := make(map[time.Time]*bucket)
	for _, o := range orders {
		if !o.Status.RevenueEligible() {
			continue
		}
		key := w.DayKey(o.CreatedAt)
		b, ok := byDay[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			byDay[key] = b
		}
		b.revenue = b.revenue.Add(o.Total)
		b.count++
	}

	days := w.Days()
	out := make([]models.DailyRevenue, 0, len(days))
	for _, day := range days {
		entry := models.DailyRevenue{Day: day, Revenue: decimal.Zero}
		if b, ok := byDay[day]; ok {
			entry.Revenue = b.revenue
			entry.Orders = b.count
		}
		out = append(out, entry)
	}
	return out
}

// TopProducts ranks the products referenced by the given lines by
// cumulative revenue (quantity times the unit price frozen at order
// time), descending, and returns at most n entries. Ties are broken
// lexicographically by name so the ranking is deterministic. Lines are
// grouped by product id; the display name is carried as an attribute,
// so two products sharing a name stay separate. Lines whose product
// reference no longer resolves are grouped under a fallback label.
//
// Callers are expected to pass only lines belonging to revenue-eligible
// orders; cancelled orders must not inflate the ranking.
func TopProducts(lines []models.OrderLine, n int) []models.ProductSales {
	if n <= 0 {
		n = DefaultTopProducts
	}

	byProduct := make(map[uuid.UUID]*models.ProductSales)
	var order []uuid.UUID
	for _, l := range lines {
		entry, ok := byProduct[l.ProductID]
		if !ok {
			name := l.ProductName
			if name == "" {
				name = UnknownProductLabel
			}
			entry = &models.ProductSales{
				ProductID: l.ProductID,
				Name:      name,
				Quantity:  decimal.Zero,
				Revenue:   decimal.Zero,
			}
			byProduct[l.ProductID] = entry
			order = append(order, l.ProductID)
		}
		entry.Quantity = entry.Quantity.Add(l.Quantity)
		entry.Revenue = entry.Revenue.Add(l.Subtotal())
	}

	ranking := make([]models.ProductSales, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, *byProduct[id])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if !ranking[i].Revenue.Equal(ranking[j].Revenue) {
			return ranking[i].Revenue.GreaterThan(ranking[j].Revenue)
		}
		return ranking[i].Name < ranking[j].Name
	})

	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// ExpensesByCategory totals the given expenses per category, ordered by
// the fixed category list. Categories without expenses are omitted.
func ExpensesByCategory(expenses []models.Expense) []models.CategoryExpense {
	byCategory := make(map[models.ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	var out []models.CategoryExpense
	for _, c := range models.ExpenseCategories() {
		if amount, ok := byCategory[c]; ok {
			out = append(out, models.CategoryExpense{Category: c, Amount: amount})
		}
	}
	return out
}

// Summarize combines the individual aggregations into the full summary
// for one window. Lines must belong to revenue-eligible orders of the
// same window (see TopProducts).
func Summarize(w Window, orders []models.Order, lines []models.OrderLine, expenses []models.Expense, topN int) *models.ReportSummary {
	revenue := TotalRevenue(orders)
	expense := TotalExpense(expenses)
	profit := NetProfit(revenue, expense)

	return &models.ReportSummary{
		From:         w.From,
		To:           w.To,
		TotalRevenue: revenue,
		TotalExpense: expense,
		NetProfit:    profit,
		Loss:         profit.IsNegative(),
		RevenueByDay: RevenueByDay(orders, w),
		TopProducts:  TopProducts(lines, topN),
		ByCategory:   ExpensesByCategory(expenses),
	}
}
