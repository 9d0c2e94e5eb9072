package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"qr-dine/models"
	"qr-dine/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderStore struct{}

func (stubOrderStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}

func (stubOrderStore) GetOrderDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	return nil, nil
}

func (stubOrderStore) GetByTrackCode(ctx context.Context, trackCode string) (*models.OrderDetail, error) {
	return nil, nil
}

func (stubOrderStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	return 0, nil
}

func (stubOrderStore) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]models.OrderDetail, error) {
	return []models.OrderDetail{}, nil
}

func (stubOrderStore) GetItem(ctx context.Context, itemID, orderID string) (*models.OrderItem, error) {
	return nil, nil
}

func (stubOrderStore) ListItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return []models.OrderItem{}, nil
}

func (stubOrderStore) ListItemStatuses(ctx context.Context, orderID string) ([]models.ItemStatus, error) {
	return []models.ItemStatus{}, nil
}

func (stubOrderStore) UpdateItem(ctx context.Context, itemID string, upd models.ItemStatusUpdate) error {
	return nil
}

func (stubOrderStore) UpdateOrder(ctx context.Context, orderID string, upd models.OrderStatusUpdate) error {
	return nil
}

func (stubOrderStore) InsertItemEvent(ctx context.Context, ev models.OrderItemStatusEvent) error {
	return nil
}

func (stubOrderStore) InsertOrderEvent(ctx context.Context, ev models.OrderStatusEvent) error {
	return nil
}

func (stubOrderStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return nil
}

func TestListEnhancedDefaultPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewOrderController(services.NewOrderService(stubOrderStore{}, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/enhanced", nil)
	c.Set("restaurant_id", "rest-1")

	ctrl.ListEnhanced(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.EnhancedOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
}

func TestListEnhancedClampsPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewOrderController(services.NewOrderService(stubOrderStore{}, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/enhanced?page=-3&limit=9999", nil)
	c.Set("restaurant_id", "rest-1")

	ctrl.ListEnhanced(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.EnhancedOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 100, resp.Pagination.Limit)
}
