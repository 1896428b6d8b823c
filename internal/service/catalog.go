package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/storage"
)

// CatalogService manages the product catalog.
type CatalogService interface {
	List(ctx context.Context, availableOnly bool) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	products storage.ProductRepository
}

func NewCatalogService(products storage.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) List(ctx context.Context, availableOnly bool) ([]models.Product, error) {
	if availableOnly {
		return s.products.ListAvailable(ctx)
	}
	return s.products.List(ctx)
}

func (s *catalogService) Create(ctx context.Context, p *models.Product) error {
	if !p.UnitPrice.IsPositive() {
		return ErrNonPositiveAmount
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.products.Insert(ctx, p)
}

func (s *catalogService) Update(ctx context.Context, p *models.Product) error {
	if !p.UnitPrice.IsPositive() {
		return ErrNonPositiveAmount
	}
	return s.products.Update(ctx, p)
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

// CustomerService manages the customer roster.
type CustomerService interface {
	List(ctx context.Context) ([]models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customers storage.CustomerRepository
}

func NewCustomerService(customers storage.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *customerService) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return s.customers.Insert(ctx, c)
}

func (s *customerService) Update(ctx context.Context, c *models.Customer) error {
	return s.customers.Update(ctx, c)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customers.Delete(ctx, id)
}
