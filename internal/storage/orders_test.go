package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

func newMockOrderRepo(t *testing.T) (*orderRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &orderRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func TestOrderRepository_Insert_HeaderAndLinesInOneTx(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	o := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     models.StatusConfirmed,
		Total:      decimal.NewFromInt(850),
		Type:       models.TypeConventional,
		Lines: []models.OrderLine{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(150)},
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(200)},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders .* RETURNING created_at`).
		WithArgs(o.ID, o.CustomerID, o.Status, o.Total, o.Type, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	prep := mock.ExpectPrepare(`INSERT INTO order_lines`)
	for _, l := range o.Lines {
		prep.ExpectExec().
			WithArgs(l.ID, o.ID, l.ProductID, l.Quantity, l.UnitPrice).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.Insert(context.Background(), o); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if o.CreatedAt.IsZero() {
		t.Fatalf("created_at not populated")
	}
	for _, l := range o.Lines {
		if l.OrderID != o.ID {
			t.Fatalf("line not bound to order: %+v", l)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderRepository_Insert_LineFailureRollsBackHeader(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	o := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     models.StatusConfirmed,
		Total:      decimal.NewFromInt(100),
		Type:       models.TypeConventional,
		Lines: []models.OrderLine{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders .* RETURNING created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	prep := mock.ExpectPrepare(`INSERT INTO order_lines`)
	prep.ExpectExec().WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if err := repo.Insert(context.Background(), o); err == nil {
		t.Fatalf("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	id := uuid.New()

	cases := []struct {
		name    string
		current string
		next    models.OrderStatus
		ok      bool
	}{
		{name: "legal transition", current: "confirmed", next: models.StatusPrepared, ok: true},
		{name: "cancel non-terminal", current: "prepared", next: models.StatusCancelled, ok: true},
		{name: "illegal skip", current: "draft", next: models.StatusDelivered, ok: false},
		{name: "terminal is frozen", current: "delivered", next: models.StatusCancelled, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockOrderRepo(t)
			defer done()

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = $1 FOR UPDATE`)).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(tc.current))
			if tc.ok {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $2 WHERE id = $1`)).
					WithArgs(id, tc.next).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := repo.UpdateStatus(context.Background(), id, tc.next)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, models.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	if err := repo.UpdateStatus(context.Background(), id, models.StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderRepository_ListBetween(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	orderID := uuid.New()
	custID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "customer_id", "name", "status", "total", "order_type", "notes", "created_at"}).
		AddRow(orderID.String(), custID.String(), "Ana", "confirmed", "150.00", "conventional", "", from.Add(9*time.Hour))

	mock.ExpectQuery(`SELECT o\.id, o\.customer_id, .* FROM orders o`).
		WithArgs(from, to, sqlmock.AnyArg()).
		WillReturnRows(rows)

	out, err := repo.ListBetween(context.Background(), from, to, models.RevenueEligibleStatuses())
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 order, got %d", len(out))
	}
	if out[0].ID != orderID || out[0].CustomerName != "Ana" || out[0].Status != models.StatusConfirmed {
		t.Fatalf("unexpected order: %+v", out[0])
	}
	if !out[0].Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected total: %s", out[0].Total)
	}
}

func TestOrderRepository_ListLinesBetween(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	productID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "unit", "quantity", "unit_price"}).
		AddRow(uuid.New().String(), uuid.New().String(), productID.String(), "Lettuce", "kg", "3.00", "150.00").
		AddRow(uuid.New().String(), uuid.New().String(), nil, "", "", "1.00", "80.00")

	mock.ExpectQuery(`SELECT l\.id, l\.order_id, .* FROM order_lines l`).
		WithArgs(from, to, sqlmock.AnyArg()).
		WillReturnRows(rows)

	out, err := repo.ListLinesBetween(context.Background(), from, to, models.RevenueEligibleStatuses())
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}
	if out[0].ProductID != productID || out[0].ProductName != "Lettuce" {
		t.Fatalf("unexpected line: %+v", out[0])
	}
	// dangling product reference: nil uuid, empty name
	if out[1].ProductID != uuid.Nil || out[1].ProductName != "" {
		t.Fatalf("unexpected dangling line: %+v", out[1])
	}
}

func TestOrderRepository_List_AttachesLines(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	orderID := uuid.New()
	custID := uuid.New()

	orderRows := sqlmock.NewRows([]string{"id", "customer_id", "name", "status", "total", "order_type", "notes", "created_at"}).
		AddRow(orderID.String(), custID.String(), "Ana", "confirmed", "300.00", "conventional", "ring the bell", time.Now())
	mock.ExpectQuery(`SELECT o\.id, .* ORDER BY o\.created_at DESC`).
		WillReturnRows(orderRows)

	lineRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "unit", "quantity", "unit_price"}).
		AddRow(uuid.New().String(), orderID.String(), uuid.New().String(), "Tomato", "kg", "2.00", "150.00")
	mock.ExpectQuery(`SELECT l\.id, l\.order_id, .* WHERE l\.order_id = ANY`).
		WillReturnRows(lineRows)

	out, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || len(out[0].Lines) != 1 {
		t.Fatalf("expected 1 order with 1 line, got %+v", out)
	}
	if out[0].Lines[0].ProductName != "Tomato" {
		t.Fatalf("unexpected line: %+v", out[0].Lines[0])
	}
}

func TestOrderRepository_CountByStatus(t *testing.T) {
	repo, mock, done := newMockOrderRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE status = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByStatus(context.Background(), []models.OrderStatus{models.StatusConfirmed, models.StatusPrepared})
	if err != nil || n != 4 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}
