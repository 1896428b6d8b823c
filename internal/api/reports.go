package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/verdupulse/internal/domain/dto"
)

// GetSummary handles GET /api/v1/reports/summary requests.
//
// Query Parameters:
//   - from (string, optional): Window start in YYYY-MM-DD format.
//   - to (string, optional): Window end in YYYY-MM-DD format. Both or
//     neither of from/to must be given; without them the current
//     Monday-to-Sunday week is summarized.
//
// GetSummary godoc
// @Summary      Financial summary for a date window
// @Description  Returns revenue, expenses, profit, the per-day revenue series and the top-products ranking for the window
// @Tags         reports
// @Produce      json
// @Param        from  query     string  false  "Window start in YYYY-MM-DD"  example(2025-03-03)
// @Param        to    query     string  false  "Window end in YYYY-MM-DD"    example(2025-03-09)
// @Success      200   {object}  models.ReportSummary   "Success"
// @Failure      400   {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/reports/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	w, err := h.windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date window", err))
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), w)
	if err != nil {
		respondError(c, "failed to compute summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetLatestSummary handles GET /api/v1/reports/summary/latest requests.
// It returns the summary of the newest completed request without
// touching the store; a fetch for an older window that resolves late
// never shows up here.
//
// GetLatestSummary godoc
// @Summary      Most recently computed summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.ReportSummary  "Success"
// @Failure      404  {object}  dto.ErrorResponse     "No summary computed yet"
// @Router       /api/v1/reports/summary/latest [get]
func (h *Handler) GetLatestSummary(c *gin.Context) {
	summary, ok := h.reports.LatestSummary()
	if !ok {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no summary computed yet", nil))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDashboard handles GET /api/v1/reports/dashboard requests.
//
// GetDashboard godoc
// @Summary      Landing-screen KPIs
// @Description  Returns today's revenue, active order and customer counts, this week's profit and the seven-day revenue chart
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.DashboardStats  "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/reports/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	stats, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, "failed to compute dashboard", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
