package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/dto"
	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/service"
)

// ListOrders handles GET /api/v1/orders requests.
//
// Query Parameters:
//   - status (string, optional): filter to one lifecycle status.
//
// ListOrders godoc
// @Summary      List orders with their lines
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  example(confirmed)
// @Success      200     {array}   models.Order       "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	var status *models.OrderStatus
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown status "+s, nil))
			return
		}
		status = &st
	}

	orders, err := h.orders.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, "failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id requests.
//
// GetOrder godoc
// @Summary      Get one order with its lines
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  models.Order       "Success"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "failed to fetch order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /api/v1/orders requests. Unit prices are
// frozen from the catalog server-side; the request carries product ids
// and quantities only.
//
// CreateOrder godoc
// @Summary      Create an order
// @Description  Validates the customer and every line, freezes unit prices from the catalog and writes header and lines atomically
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      dto.CreateOrderRequest  true  "Order to create"
// @Success      201    {object}  models.Order       "Created"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse  "Unknown customer or product"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
		return
	}

	in := service.NewOrder{
		CustomerID: uuid.MustParse(req.CustomerID), // format checked by Validate
		Type:       models.OrderType(req.Type),
		Notes:      req.Notes,
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, service.NewOrderLine{
			ProductID: uuid.MustParse(l.ProductID),
			Quantity:  decimal.NewFromFloat(l.Quantity),
		})
	}

	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status requests.
//
// UpdateOrderStatus godoc
// @Summary      Apply a lifecycle transition to an order
// @Description  Moves the order along draft, confirmed, prepared, delivered or to cancelled. Illegal transitions are rejected with 409
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Order id"
// @Param        status  body      dto.UpdateOrderStatusRequest true  "Target status"
// @Success      200     {object}  map[string]string  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      409     {object}  dto.ErrorResponse  "Illegal transition"
// @Router       /api/v1/orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
		return
	}

	if err := h.orders.ChangeStatus(c.Request.Context(), id, models.OrderStatus(req.Status)); err != nil {
		respondError(c, "failed to change order status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "status": req.Status})
}
