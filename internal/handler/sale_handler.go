package handler

import (
	"net/http"

	"inventorymis/internal/middleware"
	"inventorymis/internal/service"
	ws "inventorymis/internal/websocket"
	"inventorymis/pkg/pagination"
	"inventorymis/pkg/response"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	ledgerService service.LedgerService
	hub           *ws.Hub
}

func NewSaleHandler(ledgerService service.LedgerService, hub *ws.Hub) *SaleHandler {
	return &SaleHandler{ledgerService: ledgerService, hub: hub}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales", middleware.RequireAuth())
	{
		sales.GET("", h.ListSales)
		sales.POST("", h.CreateSale)
		sales.DELETE("/:id", h.DeleteSale)
	}
}

// ListSales returns paginated sales with optional product-title filter
// @Summary      List sales
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number (default: 1)"
// @Param        limit  query     int     false  "Items per page (default: 20)"
// @Param        q      query     string  false  "Search by product title"
// @Success      200    {object}  response.Response
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := pagination.Parse(c)

	sales, total, err := h.ledgerService.ListSales(c.Request.Context(), params.Search, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sales, params.Page, params.Limit, total))
}

// CreateSale records a sale and lowers the product's stock balance. Selling a
// product that was never purchased fails with 404 and records nothing.
// @Summary      Record sale
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateSaleRequest  true  "Sale payload"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.ledgerService.CreateSale(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	h.hub.BroadcastStockEvent(ws.StockEvent{
		Event:     ws.EventStockDecreased,
		ProductID: sale.ProductID.String(),
		Quantity:  sale.Quantity,
	})

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// DeleteSale removes a sale and restores the product's stock balance
// @Summary      Delete sale
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Sale ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	sale, err := h.ledgerService.DeleteSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	h.hub.BroadcastStockEvent(ws.StockEvent{
		Event:     ws.EventStockIncreased,
		ProductID: sale.ProductID.String(),
		Quantity:  sale.Quantity,
	})

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Sale deleted successfully"}))
}
