package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"qr-dine/models"
	"qr-dine/repositories"
	"qr-dine/services"

	"github.com/gin-gonic/gin"
)

const publicMenuCacheTTL = 5 * time.Minute

type PublicController struct {
	restaurants services.RestaurantStore
	menu        *services.MenuService
	orders      *services.OrderService
}

func NewPublicController(restaurants services.RestaurantStore, menu *services.MenuService, orders *services.OrderService) *PublicController {
	return &PublicController{restaurants: restaurants, menu: menu, orders: orders}
}

type publicMenuResponse struct {
	Restaurant models.RestaurantSummary `json:"restaurant"`
	Menu       []models.MenuItem        `json:"menu"`
}

// Menu godoc
// @Summary Public menu
// @Description Available menu items for a restaurant, looked up by its public slug
// @Tags Public
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Success 200 {object} controllers.publicMenuResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /public/{slug}/menu [get]
func (ctrl *PublicController) Menu(c *gin.Context) {
	restaurant, err := ctrl.restaurants.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(c, models.NewNotFoundError("Restaurant not found"))
			return
		}
		respondError(c, err)
		return
	}

	cacheKey := publicMenuCacheKey(restaurant.ID)
	if models.RedisClient != nil {
		if cached, err := models.RedisClient.Get(context.Background(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	items, err := ctrl.menu.ListAvailable(c.Request.Context(), restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := publicMenuResponse{
		Restaurant: models.RestaurantSummary{ID: restaurant.ID, RestaurantName: restaurant.RestaurantName},
		Menu:       items,
	}

	if models.RedisClient != nil {
		if payload, err := json.Marshal(resp); err == nil {
			models.RedisClient.Set(context.Background(), cacheKey, payload, publicMenuCacheTTL)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveTable godoc
// @Summary Resolve a table by number
// @Description Looks up a table for the restaurant, creating it on first scan
// @Tags Public
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param tableNumber path string true "Table number"
// @Success 200 {object} models.TableSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /public/{slug}/tables/{tableNumber} [get]
func (ctrl *PublicController) ResolveTable(c *gin.Context) {
	restaurant, err := ctrl.restaurants.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(c, models.NewNotFoundError("Restaurant not found"))
			return
		}
		respondError(c, err)
		return
	}

	table, err := ctrl.restaurants.GetOrCreateTable(c.Request.Context(), restaurant.ID, c.Param("tableNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TableSummary{TableNumber: table.TableNumber})
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Creates an order from a customer cart; prices come from the stored menu
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Restaurant slug"
// @Param request body models.PlaceOrderRequest true "Cart"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.ErrorResponse
// @Router /public/{slug}/orders [post]
func (ctrl *PublicController) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := ctrl.orders.PlaceOrder(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// TrackOrder godoc
// @Summary Track an order
// @Description Order progress for customers, looked up by track code
// @Tags Public
// @Produce json
// @Param trackCode path string true "Track code"
// @Success 200 {object} models.OrderItemsResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /public/orders/{trackCode} [get]
func (ctrl *PublicController) TrackOrder(c *gin.Context) {
	resp, err := ctrl.orders.TrackOrder(c.Request.Context(), c.Param("trackCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
