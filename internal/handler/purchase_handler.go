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

type PurchaseHandler struct {
	ledgerService service.LedgerService
	hub           *ws.Hub
}

func NewPurchaseHandler(ledgerService service.LedgerService, hub *ws.Hub) *PurchaseHandler {
	return &PurchaseHandler{ledgerService: ledgerService, hub: hub}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/api/purchases", middleware.RequireAuth())
	{
		purchases.GET("", h.ListPurchases)
		purchases.POST("", h.CreatePurchase)
		purchases.DELETE("/:id", h.DeletePurchase)
	}
}

// ListPurchases returns paginated purchases with optional product-title filter
// @Summary      List purchases
// @Tags         purchases
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number (default: 1)"
// @Param        limit  query     int     false  "Items per page (default: 20)"
// @Param        q      query     string  false  "Search by product title"
// @Success      200    {object}  response.Response
// @Router       /api/purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	params := pagination.Parse(c)

	purchases, total, err := h.ledgerService.ListPurchases(c.Request.Context(), params.Search, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, purchases, params.Page, params.Limit, total))
}

// CreatePurchase records a purchase and raises the product's stock balance
// @Summary      Record purchase
// @Tags         purchases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePurchaseRequest  true  "Purchase payload"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req service.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	purchase, err := h.ledgerService.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	h.hub.BroadcastStockEvent(ws.StockEvent{
		Event:     ws.EventStockIncreased,
		ProductID: purchase.ProductID.String(),
		Quantity:  purchase.Quantity,
	})

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, purchase))
}

// DeletePurchase removes a purchase and lowers the product's stock balance
// @Summary      Delete purchase
// @Tags         purchases
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Purchase ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	purchase, err := h.ledgerService.DeletePurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	h.hub.BroadcastStockEvent(ws.StockEvent{
		Event:     ws.EventStockDecreased,
		ProductID: purchase.ProductID.String(),
		Quantity:  purchase.Quantity,
	})

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Purchase deleted successfully"}))
}
