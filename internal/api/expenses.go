package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/verdupulse/internal/domain/dto"
	"github.com/guttosm/verdupulse/internal/domain/models"
)

// ListExpenses handles GET /api/v1/expenses requests.
//
// Query Parameters:
//   - from, to (string, optional): restrict to a YYYY-MM-DD window.
//     Without them every expense is returned, newest first.
//
// ListExpenses godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Param        from  query     string  false  "Window start in YYYY-MM-DD"
// @Param        to    query     string  false  "Window end in YYYY-MM-DD"
// @Success      200   {array}   models.Expense     "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/expenses [get]
func (h *Handler) ListExpenses(c *gin.Context) {
	if c.Query("from") == "" && c.Query("to") == "" {
		expenses, err := h.expenses.List(c.Request.Context())
		if err != nil {
			respondError(c, "failed to list expenses", err)
			return
		}
		c.JSON(http.StatusOK, expenses)
		return
	}

	w, err := h.windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date window", err))
		return
	}
	expenses, err := h.expenses.ListWindow(c.Request.Context(), w)
	if err != nil {
		respondError(c, "failed to list expenses", err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpense handles POST /api/v1/expenses requests.
//
// CreateExpense godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        expense  body      dto.CreateExpenseRequest  true  "Expense to record"
// @Success      201      {object}  models.Expense     "Created"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/expenses [post]
func (h *Handler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date, expected YYYY-MM-DD", err))
		return
	}

	e := &models.Expense{
		Name:     req.Name,
		Category: models.ExpenseCategory(req.Category),
		Amount:   decimal.NewFromFloat(req.Amount),
		Date:     date,
		Details:  req.Details,
	}
	if err := h.expenses.Create(c.Request.Context(), e); err != nil {
		respondError(c, "failed to record expense", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
