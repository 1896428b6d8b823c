package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/report"
	"github.com/guttosm/verdupulse/internal/storage"
)

// ReportService computes the derived figures for the finance and
// dashboard screens. Fetching is the only suspension point; the
// aggregation itself is pure and synchronous.
type ReportService interface {
	// Summary fetches the window's records and aggregates them. The
	// result is also published as the latest summary unless a summary
	// for a window requested later has already been published.
	Summary(ctx context.Context, w report.Window) (*models.ReportSummary, error)

	// LatestSummary returns the most recently requested summary that
	// has completed, if any. A slow fetch for an older request never
	// replaces the summary of a newer one.
	LatestSummary() (*models.ReportSummary, bool)

	// Dashboard computes the landing-screen KPIs for the current day
	// and week.
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type reportService struct {
	orders    storage.OrderRepository
	expenses  storage.ExpenseRepository
	customers storage.CustomerRepository
	loc       *time.Location
	topN      int

	// clock indirection for tests
	now func() time.Time

	mu        sync.Mutex
	requested uint64
	published uint64
	latest    *models.ReportSummary
}

// NewReportService wires the report computations to the record store.
// loc is the business's reporting timezone; topN bounds the product
// ranking.
func NewReportService(orders storage.OrderRepository, expenses storage.ExpenseRepository, customers storage.CustomerRepository, loc *time.Location, topN int) ReportService {
	if loc == nil {
		loc = time.Local
	}
	if topN <= 0 {
		topN = report.DefaultTopProducts
	}
	return &reportService{
		orders:    orders,
		expenses:  expenses,
		customers: customers,
		loc:       loc,
		topN:      topN,
		now:       time.Now,
	}
}

func (s *reportService) Summary(ctx context.Context, w report.Window) (*models.ReportSummary, error) {
	ticket := s.takeTicket()

	orders, lines, expenses, err := s.fetchWindow(ctx, w)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(w, orders, lines, expenses, s.topN)
	s.publish(ticket, summary)
	return summary, nil
}

func (s *reportService) LatestSummary() (*models.ReportSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latest != nil
}

func (s *reportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	week := report.ThisWeek(now, s.loc)
	chart := report.LastNDays(now, 7, s.loc)
	eligible := models.RevenueEligibleStatuses()

	var (
		chartOrders  []models.Order
		chartLines   []models.OrderLine
		weekOrders   []models.Order
		weekExpenses []models.Expense
		activeOrders int
		customerN    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start, end := chart.Bounds()
		var err error
		chartOrders, err = s.orders.ListBetween(gctx, start, end, eligible)
		return err
	})
	g.Go(func() error {
		start, end := chart.Bounds()
		var err error
		chartLines, err = s.orders.ListLinesBetween(gctx, start, end, eligible)
		return err
	})
	g.Go(func() error {
		start, end := week.Bounds()
		var err error
		weekOrders, err = s.orders.ListBetween(gctx, start, end, eligible)
		return err
	})
	g.Go(func() error {
		var err error
		weekExpenses, err = s.expenses.ListBetween(gctx, week.From, week.To)
		return err
	})
	g.Go(func() error {
		var err error
		activeOrders, err = s.orders.CountByStatus(gctx, []models.OrderStatus{models.StatusConfirmed, models.StatusPrepared})
		return err
	})
	g.Go(func() error {
		var err error
		customerN, err = s.customers.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := report.RevenueByDay(chartOrders, chart)
	weekProfit := report.NetProfit(report.TotalRevenue(weekOrders), report.TotalExpense(weekExpenses))

	return &models.DashboardStats{
		// the chart window ends today, so today's revenue is its last point
		RevenueToday:   series[len(series)-1].Revenue,
		ActiveOrders:   activeOrders,
		TotalCustomers: customerN,
		WeekProfit:     weekProfit,
		WeekLoss:       weekProfit.IsNegative(),
		RevenueByDay:   series,
		TopProducts:    report.TopProducts(chartLines, s.topN),
	}, nil
}

// fetchWindow issues the three store queries for a window in parallel.
// Orders and lines are fetched pre-filtered to revenue-eligible
// statuses; the aggregation re-applies the rule regardless.
func (s *reportService) fetchWindow(ctx context.Context, w report.Window) ([]models.Order, []models.OrderLine, []models.Expense, error) {
	eligible := models.RevenueEligibleStatuses()
	start, end := w.Bounds()

	var (
		orders   []models.Order
		lines    []models.OrderLine
		expenses []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListBetween(gctx, start, end, eligible)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = s.orders.ListLinesBetween(gctx, start, end, eligible)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListBetween(gctx, w.From, w.To)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return orders, lines, expenses, nil
}

func (s *reportService) takeTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested++
	return s.requested
}

// publish stores the summary as the latest one unless a summary for a
// later ticket already landed. This is what keeps a stale fetch (window
// A resolving after window B was requested) from overwriting B's result.
func (s *reportService) publish(ticket uint64, summary *models.ReportSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket > s.published {
		s.published = ticket
		s.latest = summary
	}
}
