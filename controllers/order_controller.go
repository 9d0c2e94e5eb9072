package controllers

import (
	"net/http"

	"qr-dine/models"
	"qr-dine/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// ListEnhanced godoc
// @Summary List orders with items and stats
// @Description Paginated orders for the dashboard, each with its items and aggregate stats
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} models.EnhancedOrdersResponse
// @Router /orders/enhanced [get]
func (ctrl *OrderController) ListEnhanced(c *gin.Context) {
	page, limit := paginationParams(c, 10)

	resp, err := ctrl.orders.ListEnhanced(c.Request.Context(), restaurantID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrderItems godoc
// @Summary Get order items
// @Description Items of a single order together with aggregate stats
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} models.OrderItemsResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{orderId}/items [get]
func (ctrl *OrderController) GetOrderItems(c *gin.Context) {
	resp, err := ctrl.orders.GetOrderItems(c.Request.Context(), restaurantID(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateItemStatus godoc
// @Summary Update order item status
// @Description Updates one item and recomputes the order status from all items
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param itemId path string true "Order item ID"
// @Param request body models.UpdateItemStatusRequest true "New status"
// @Success 200 {object} models.StatusUpdateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/{orderId}/items/{itemId}/status [put]
func (ctrl *OrderController) UpdateItemStatus(c *gin.Context) {
	var req models.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	status, err := ctrl.orders.UpdateItemStatus(c.Request.Context(), restaurantID(c), c.Param("orderId"), c.Param("itemId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.StatusUpdateResponse{
		Success: true,
		Status:  string(status),
		Message: "Order item status updated successfully",
	})
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status or ETA"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/{orderId}/status [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), restaurantID(c), c.Param("orderId"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
