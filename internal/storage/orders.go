package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/guttosm/verdupulse/internal/domain/models"
)

// OrderRepository defines the DB contract for orders and their lines.
//
// Order creation writes the header and its lines in a single
// transaction: a header must never be left behind without lines.
// Status changes are validated against the lifecycle inside the same
// transaction that applies them, so a concurrent update cannot slip an
// illegal transition through.
type OrderRepository interface {
	List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListBetween(ctx context.Context, from, to time.Time, statuses []models.OrderStatus) ([]models.Order, error)
	ListLinesBetween(ctx context.Context, from, to time.Time, statuses []models.OrderStatus) ([]models.OrderLine, error)
	CountByStatus(ctx context.Context, statuses []models.OrderStatus) (int, error)
	Insert(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) error
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderSelect = `
	SELECT o.id, o.customer_id, COALESCE(c.name, ''), o.status, o.total, o.order_type, COALESCE(o.notes, ''), o.created_at
	FROM orders o
	LEFT JOIN customers c ON c.id = o.customer_id`

// List returns orders newest first, with customer name and nested
// lines resolved. An optional status narrows the result.
func (r *orderRepository) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	query := orderSelect
	var args []interface{}
	if status != nil {
		query += ` WHERE o.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY o.created_at DESC`

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	orders, err := r.queryOrders(ctx, orderSelect+` WHERE o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListBetween returns orders created inside the half-open instant range
// [from, to) whose status is in the given set, oldest first. An empty
// status set means no status filter.
func (r *orderRepository) ListBetween(ctx context.Context, from, to time.Time, statuses []models.OrderStatus) ([]models.Order, error) {
	query := orderSelect + ` WHERE o.created_at >= $1 AND o.created_at < $2`
	args := []interface{}{from, to}
	if len(statuses) > 0 {
		query += ` AND o.status = ANY($3)`
		args = append(args, pq.Array(statusStrings(statuses)))
	}
	query += ` ORDER BY o.created_at`

	return r.queryOrders(ctx, query, args...)
}

// ListLinesBetween returns the lines of orders created inside [from, to)
// whose status is in the given set, with product name and unit
// resolved. Lines referencing a deleted product come back with an
// empty name.
func (r *orderRepository) ListLinesBetween(ctx context.Context, from, to time.Time, statuses []models.OrderStatus) ([]models.OrderLine, error) {
	query := `
		SELECT l.id, l.order_id, l.product_id, COALESCE(p.name, ''), COALESCE(p.unit, ''), l.quantity, l.unit_price
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2`
	args := []interface{}{from, to}
	if len(statuses) > 0 {
		query += ` AND o.status = ANY($3)`
		args = append(args, pq.Array(statusStrings(statuses)))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.OrderLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *orderRepository) CountByStatus(ctx context.Context, statuses []models.OrderStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = ANY($1)`,
		pq.Array(statusStrings(statuses)),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// Insert writes the order header and all its lines in one transaction.
// If any line insert fails the header is rolled back too; the store
// never keeps a header without lines.
func (r *orderRepository) Insert(ctx context.Context, o *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order insert: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, customer_id, status, total, order_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, o.ID, o.CustomerID, o.Status, o.Total, o.Type, nullable(o.Notes)).Scan(&o.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert order header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare line insert: %w", err)
	}

	for i := range o.Lines {
		l := &o.Lines[i]
		l.OrderID = o.ID
		if _, err := stmt.ExecContext(ctx, l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// UpdateStatus applies a lifecycle transition. The current status is
// read with a row lock and checked against the transition table before
// the update, all inside one transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status update: %w", err)
	}

	var current models.OrderStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return ErrNotFound
	}
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("read order status: %w", err)
	}

	if !current.CanTransitionTo(next) {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current, next)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, next); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update order status: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Status, &o.Total, &o.Type, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// attachLines resolves the lines of the given orders with one query.
func (r *orderRepository) attachLines(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[uuid.UUID]*models.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID.String()
		index[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.order_id, l.product_id, COALESCE(p.name, ''), COALESCE(p.unit, ''), l.quantity, l.unit_price
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("attach order lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return err
		}
		if o, ok := index[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

func scanLine(rows *sql.Rows) (models.OrderLine, error) {
	var l models.OrderLine
	var productID uuid.NullUUID
	if err := rows.Scan(&l.ID, &l.OrderID, &productID, &l.ProductName, &l.ProductUnit, &l.Quantity, &l.UnitPrice); err != nil {
		return models.OrderLine{}, fmt.Errorf("scan order line: %w", err)
	}
	l.ProductID = productID.UUID
	return l, nil
}

func statusStrings(statuses []models.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
