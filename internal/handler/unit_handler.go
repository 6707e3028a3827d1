package handler

import (
	"net/http"

	"inventorymis/internal/middleware"
	"inventorymis/internal/service"
	"inventorymis/pkg/pagination"
	"inventorymis/pkg/response"

	"github.com/gin-gonic/gin"
)

type UnitHandler struct {
	masterService service.MasterService
}

func NewUnitHandler(masterService service.MasterService) *UnitHandler {
	return &UnitHandler{masterService: masterService}
}

func (h *UnitHandler) RegisterRoutes(router *gin.RouterGroup) {
	units := router.Group("/api/units", middleware.RequireAuth())
	{
		units.GET("", h.ListUnits)
		units.POST("", h.CreateUnit)
		units.PUT("/:id", h.UpdateUnit)
		units.DELETE("/:id", h.DeleteUnit)
	}
}

// ListUnits returns paginated measurement units with optional title filter
// @Summary      List units
// @Tags         units
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int     false  "Page number (default: 1)"
// @Param        limit  query     int     false  "Items per page (default: 20)"
// @Param        q      query     string  false  "Search by title"
// @Success      200    {object}  response.Response
// @Router       /api/units [get]
func (h *UnitHandler) ListUnits(c *gin.Context) {
	params := pagination.Parse(c)

	units, total, err := h.masterService.ListUnits(c.Request.Context(), params.Search, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, units, params.Page, params.Limit, total))
}

// CreateUnit creates a new measurement unit
// @Summary      Create unit
// @Tags         units
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateUnitRequest  true  "Unit payload"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/units [post]
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req service.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	unit, err := h.masterService.CreateUnit(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, unit))
}

// UpdateUnit updates an existing unit
// @Summary      Update unit
// @Tags         units
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Unit ID"
// @Param        payload  body  service.CreateUnitRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/units/{id} [put]
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	var req service.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	unit, err := h.masterService.UpdateUnit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, unit))
}

// DeleteUnit deletes a unit. Products measured in it are removed by cascade,
// together with their ledger and inventory rows.
// @Summary      Delete unit
// @Tags         units
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Unit ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/units/{id} [delete]
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	if err := h.masterService.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromErr(err), response.Error(statusFromErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Unit deleted successfully"}))
}
