package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
//
// The allowed transitions form a linear flow with a cancellation branch:
//
//	draft -> confirmed -> prepared -> delivered
//
// "cancelled" is reachable from any non-terminal state. "delivered" and
// "cancelled" are terminal: no further transitions are accepted.
type OrderStatus string

const (
	StatusDraft     OrderStatus = "draft"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPrepared  OrderStatus = "prepared"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// ErrInvalidTransition is returned when a status change violates the
// order lifecycle.
var ErrInvalidTransition = errors.New("invalid status transition")

// statusTransitions is the explicit transition table for the order lifecycle.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusDraft:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPrepared, StatusCancelled},
	StatusPrepared:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RevenueEligible reports whether orders in this status count toward
// revenue. Draft and cancelled orders never do; this rule must be
// re-applied at every aggregation call site, it is not a DB constraint.
func (s OrderStatus) RevenueEligible() bool {
	switch s {
	case StatusConfirmed, StatusPrepared, StatusDelivered:
		return true
	}
	return false
}

// RevenueEligibleStatuses returns the status set counted toward revenue.
func RevenueEligibleStatuses() []OrderStatus {
	return []OrderStatus{StatusConfirmed, StatusPrepared, StatusDelivered}
}

// OrderType distinguishes regular deliveries from exclusive (custom) ones.
type OrderType string

const (
	TypeConventional OrderType = "conventional"
	TypeExclusive    OrderType = "exclusive"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == TypeConventional || t == TypeExclusive
}

// Order is an order header. Total is stored denormalized: it is computed
// from the lines at creation time and never recomputed by the store.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Status       OrderStatus     `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Type         OrderType       `json:"type"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Lines        []OrderLine     `json:"lines,omitempty"`
}

// OrderLine is one product/quantity/price record attached to an order.
// UnitPrice is copied from the product at creation time so later catalog
// price changes do not retroactively alter historical orders.
type OrderLine struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductUnit string          `json:"product_unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity times the frozen unit price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// ComputeTotal sums the subtotals of the given lines.
func ComputeTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Transition validates and applies a status change on the order.
func (o *Order) Transition(next OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}
