package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/dto"
	"github.com/guttosm/verdupulse/internal/domain/models"
)

// ListProducts handles GET /api/v1/products requests.
//
// Query Parameters:
//   - available (string, optional): "true" restricts the list to
//     products offered in order entry.
//
// ListProducts godoc
// @Summary      List catalog products
// @Tags         catalog
// @Produce      json
// @Param        available  query     string  false  "Only available products"  example(true)
// @Success      200        {array}   models.Product     "Success"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context(), c.Query("available") == "true")
	if err != nil {
		respondError(c, "failed to list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/v1/products requests.
//
// CreateProduct godoc
// @Summary      Create a catalog product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        product  body      dto.CreateProductRequest  true  "Product to create"
// @Success      201      {object}  models.Product     "Created"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	req, ok := bindProduct(c)
	if !ok {
		return
	}
	p := productFromRequest(req)
	if err := h.catalog.Create(c.Request.Context(), p); err != nil {
		respondError(c, "failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/v1/products/:id requests.
//
// UpdateProduct godoc
// @Summary      Replace a catalog product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Product id"
// @Param        product  body      dto.CreateProductRequest  true  "New product state"
// @Success      200      {object}  models.Product     "Success"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindProduct(c)
	if !ok {
		return
	}
	p := productFromRequest(req)
	p.ID = id
	if err := h.catalog.Update(c.Request.Context(), p); err != nil {
		respondError(c, "failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/v1/products/:id requests. Order
// lines referencing the product keep their frozen name and price.
//
// DeleteProduct godoc
// @Summary      Delete a catalog product
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "Product id"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "failed to delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindProduct(c *gin.Context) (dto.CreateProductRequest, bool) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return req, false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
		return req, false
	}
	return req, true
}

func productFromRequest(req dto.CreateProductRequest) *models.Product {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &models.Product{
		Name:      req.Name,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Unit:      req.Unit,
		Available: available,
		Notes:     req.Notes,
	}
}

// ListCustomers handles GET /api/v1/customers requests.
//
// ListCustomers godoc
// @Summary      List roster customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}   models.Customer    "Success"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/customers [get]
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list customers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// CreateCustomer handles POST /api/v1/customers requests.
//
// CreateCustomer godoc
// @Summary      Create a roster customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customer  body      dto.CreateCustomerRequest  true  "Customer to create"
// @Success      201       {object}  models.Customer    "Created"
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/customers [post]
func (h *Handler) CreateCustomer(c *gin.Context) {
	req, ok := bindCustomer(c)
	if !ok {
		return
	}
	cust := customerFromRequest(req)
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		respondError(c, "failed to create customer", err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

// UpdateCustomer handles PUT /api/v1/customers/:id requests.
//
// UpdateCustomer godoc
// @Summary      Replace a roster customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id        path      string                     true  "Customer id"
// @Param        customer  body      dto.CreateCustomerRequest  true  "New customer state"
// @Success      200       {object}  models.Customer    "Success"
// @Failure      404       {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/customers/{id} [put]
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindCustomer(c)
	if !ok {
		return
	}
	cust := customerFromRequest(req)
	cust.ID = id
	if err := h.customers.Update(c.Request.Context(), cust); err != nil {
		respondError(c, "failed to update customer", err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id requests. A
// customer still referenced by orders cannot be deleted.
//
// DeleteCustomer godoc
// @Summary      Delete a roster customer
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "Customer id"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      409  {object}  dto.ErrorResponse  "Customer has orders"
// @Router       /api/v1/customers/{id} [delete]
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "failed to delete customer", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindCustomer(c *gin.Context) (dto.CreateCustomerRequest, bool) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return req, false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
		return req, false
	}
	return req, true
}

func customerFromRequest(req dto.CreateCustomerRequest) *models.Customer {
	return &models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
}
