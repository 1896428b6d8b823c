package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/verdupulse/internal/domain/dto"
	"github.com/guttosm/verdupulse/internal/domain/models"
	"github.com/guttosm/verdupulse/internal/report"
	"github.com/guttosm/verdupulse/internal/service"
	"github.com/guttosm/verdupulse/internal/storage"
)

// Handler provides the HTTP handlers for the business endpoints.
//
// Responsibilities:
//   - Validate incoming query parameters and request bodies
//   - Delegate to the service layer
//   - Translate service results and errors into JSON responses with
//     appropriate HTTP status codes
type Handler struct {
	reports   service.ReportService
	orders    service.OrderService
	catalog   service.CatalogService
	customers service.CustomerService
	expenses  service.ExpenseService
	loc       *time.Location
}

// NewHandler constructs a Handler around the service layer.
//
// Parameters:
//   - reports, orders, catalog, customers, expenses: the service layer.
//   - loc (*time.Location): reporting timezone used to resolve default
//     date windows; nil falls back to the local zone.
//
// Returns:
//   - *Handler: a handler ready to be registered with the router.
func NewHandler(reports service.ReportService, orders service.OrderService, catalog service.CatalogService, customers service.CustomerService, expenses service.ExpenseService, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		reports:   reports,
		orders:    orders,
		catalog:   catalog,
		customers: customers,
		expenses:  expenses,
		loc:       loc,
	}
}

// respondError maps service and store errors onto HTTP status codes:
// missing records are 404, illegal lifecycle transitions 409, input
// validation failures 400, everything else 500.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, storage.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNoLines),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrNonPositiveAmount):
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.NewErrorResponse(message, err))
}

// parseID reads the :id path parameter as a UUID, answering 400 itself
// when it is malformed.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid id", err))
		return uuid.Nil, false
	}
	return id, true
}

// windowFromQuery resolves a report window from the optional from/to
// query parameters (YYYY-MM-DD, both required together). Without them
// the Monday-to-Sunday week containing today is used.
func (h *Handler) windowFromQuery(c *gin.Context) (report.Window, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" && toStr == "" {
		return report.ThisWeek(time.Now(), h.loc), nil
	}
	from, err := time.ParseInLocation("2006-01-02", fromStr, h.loc)
	if err != nil {
		return report.Window{}, fmt.Errorf("invalid from date, expected YYYY-MM-DD: %w", err)
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, h.loc)
	if err != nil {
		return report.Window{}, fmt.Errorf("invalid to date, expected YYYY-MM-DD: %w", err)
	}
	return report.NewWindow(from, to, h.loc)
}
