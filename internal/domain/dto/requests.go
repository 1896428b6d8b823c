package dto

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance; request DTOs are checked
// before any store call is attempted.
var validate = validator.New()

// CreateProductRequest is the body for creating or replacing a catalog
// product.
type CreateProductRequest struct {
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gt=0"`
	Unit      string  `json:"unit" validate:"required"`
	Available *bool   `json:"available"`
	Notes     string  `json:"notes"`
}

func (r CreateProductRequest) Validate() error { return validate.Struct(r) }

// CreateCustomerRequest is the body for creating or replacing a roster
// customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (r CreateCustomerRequest) Validate() error { return validate.Struct(r) }

// OrderLineRequest is one requested line of a new order. No price
// field: unit prices are frozen from the catalog server-side.
type OrderLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest is the body for order intake.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required,uuid"`
	Type       string             `json:"type" validate:"omitempty,oneof=conventional exclusive"`
	Notes      string             `json:"notes"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r CreateOrderRequest) Validate() error { return validate.Struct(r) }

// UpdateOrderStatusRequest is the body for a lifecycle transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft confirmed prepared delivered cancelled"`
}

func (r UpdateOrderStatusRequest) Validate() error { return validate.Struct(r) }

// CreateExpenseRequest is the body for recording an expense.
type CreateExpenseRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required,oneof=logistics purchases advertising services other"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Details  string  `json:"details"`
}

func (r CreateExpenseRequest) Validate() error { return validate.Struct(r) }
