package handler

import (
	"net/http"
	"time"

	"inventorymis/internal/middleware"
	"inventorymis/internal/service"
	"inventorymis/pkg/pagination"
	"inventorymis/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("", middleware.RequireAuth())
	{
		reports.GET("/api/inventory", h.ListInventory)
		reports.GET("/api/dashboard", h.Dashboard)
		reports.GET("/api/statistics", h.GetTradeStats)
	}
}

// ListInventory returns paginated stock balances with optional title filter
// @Summary      List inventory balances
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number (default: 1)"
// @Param        limit  query     int     false  "Items per page (default: 20)"
// @Param        q      query     string  false  "Search by product title"
// @Success      200    {object}  response.Response
// @Router       /api/inventory [get]
func (h *ReportHandler) ListInventory(c *gin.Context) {
	params := pagination.Parse(c)

	items, total, err := h.reportService.ListInventory(c.Request.Context(), params.Search, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, items, params.Page, params.Limit, total))
}

// Dashboard returns the inventory snapshot, summary figures and recent activity
// @Summary      Dashboard
// @Description  Inventory snapshot with totals, low-stock count and recent purchases/sales
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        q  query  string  false  "Search by product title"
// @Success      200  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	params := pagination.Parse(c)

	dashboard, err := h.reportService.Dashboard(c.Request.Context(), params.Search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// GetTradeStats returns purchase/sale totals and top ranked products bounded by time
// @Summary      Trade statistics
// @Tags         statistics
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query  string  false  "Start Date (RFC3339, defaults to first of month)"
// @Param        end_date    query  string  false  "End Date (RFC3339, defaults to now)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/statistics [get]
func (h *ReportHandler) GetTradeStats(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	var startDate, endDate time.Time
	var err error

	// Default to current month if no dates are provided
	now := time.Now()
	if startDateStr == "" {
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		startDate, err = time.Parse(time.RFC3339, startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid start_date format, expected RFC3339"))
			return
		}
	}

	if endDateStr == "" {
		endDate = now
	} else {
		endDate, err = time.Parse(time.RFC3339, endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid end_date format, expected RFC3339"))
			return
		}
	}

	stats, err := h.reportService.TradeStats(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
