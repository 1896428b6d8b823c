package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/storage"
)

// Validation errors surfaced before any store write is attempted.
var (
	ErrNoLines            = errors.New("order has no lines")
	ErrProductUnavailable = errors.New("product is not available")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
)

// NewOrderLine is one requested line of a new order. The unit price is
// not accepted from the caller: it is frozen from the catalog at
// creation time.
type NewOrderLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// NewOrder is the input for creating an order.
type NewOrder struct {
	CustomerID uuid.UUID
	Type       models.OrderType
	Notes      string
	Lines      []NewOrderLine
}

// OrderService handles order intake and lifecycle changes.
type OrderService interface {
	List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// Create validates the input, freezes unit prices from the catalog,
	// computes the total and writes header and lines atomically. New
	// orders start confirmed.
	Create(ctx context.Context, in NewOrder) (*models.Order, error)

	// ChangeStatus applies a lifecycle transition, rejecting illegal
	// ones with models.ErrInvalidTransition.
	ChangeStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) error
}

type orderService struct {
	orders    storage.OrderRepository
	products  storage.ProductRepository
	customers storage.CustomerRepository
}

func NewOrderService(orders storage.OrderRepository, products storage.ProductRepository, customers storage.CustomerRepository) OrderService {
	return &orderService{orders: orders, products: products, customers: customers}
}

func (s *orderService) List(ctx context.Context, status *models.OrderStatus) ([]models.Order, error) {
	return s.orders.List(ctx, status)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) Create(ctx context.Context, in NewOrder) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrNoLines
	}
	if !in.Type.Valid() {
		in.Type = models.TypeConventional
	}

	// The customer reference must resolve before anything is written.
	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		return nil, fmt.Errorf("customer %s: %w", in.CustomerID, err)
	}

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: in.CustomerID,
		Status:     models.StatusConfirmed,
		Type:       in.Type,
		Notes:      in.Notes,
	}

	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, ErrNonPositiveAmount)
		}
		p, err := s.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, err)
		}
		if !p.Available {
			return nil, fmt.Errorf("product %s: %w", p.Name, ErrProductUnavailable)
		}
		order.Lines = append(order.Lines, models.OrderLine{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductUnit: p.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   p.UnitPrice, // frozen at order time
		})
	}
	order.Total = models.ComputeTotal(order.Lines)

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ChangeStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidTransition, next)
	}
	return s.orders.UpdateStatus(ctx, id, next)
}
