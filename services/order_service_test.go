package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"qr-dine/models"
	"qr-dine/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	orders      map[string]*models.Order
	items       map[string][]models.OrderItem
	itemEvents  []models.OrderItemStatusEvent
	orderEvents []models.OrderStatusEvent

	listStatusesErr error
	countErr        error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders: map[string]*models.Order{},
		items:  map[string][]models.OrderItem{},
	}
}

func (f *fakeOrderStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) GetOrderDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.OrderDetail{Order: *order}, nil
}

func (f *fakeOrderStore) GetByTrackCode(ctx context.Context, trackCode string) (*models.OrderDetail, error) {
	for _, order := range f.orders {
		if order.TrackCode == trackCode {
			return &models.OrderDetail{Order: *order}, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrderStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := 0
	for _, order := range f.orders {
		if order.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderStore) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]models.OrderDetail, error) {
	all := []models.OrderDetail{}
	for _, order := range f.orders {
		if order.RestaurantID == restaurantID {
			all = append(all, models.OrderDetail{Order: *order})
		}
	}
	if offset >= len(all) {
		return []models.OrderDetail{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeOrderStore) GetItem(ctx context.Context, itemID, orderID string) (*models.OrderItem, error) {
	for _, item := range f.items[orderID] {
		if item.ID == itemID {
			copied := item
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrderStore) ListItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return append([]models.OrderItem{}, f.items[orderID]...), nil
}

func (f *fakeOrderStore) ListItemStatuses(ctx context.Context, orderID string) ([]models.ItemStatus, error) {
	if f.listStatusesErr != nil {
		return nil, f.listStatusesErr
	}
	statuses := []models.ItemStatus{}
	for _, item := range f.items[orderID] {
		statuses = append(statuses, item.Status)
	}
	return statuses, nil
}

func (f *fakeOrderStore) UpdateItem(ctx context.Context, itemID string, upd models.ItemStatusUpdate) error {
	for orderID, items := range f.items {
		for i := range items {
			if items[i].ID == itemID {
				items[i].Status = upd.Status
				if upd.ETASet {
					items[i].EstimatedTime = upd.ETA
				}
				f.items[orderID] = items
				return nil
			}
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeOrderStore) UpdateOrder(ctx context.Context, orderID string, upd models.OrderStatusUpdate) error {
	order, ok := f.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	if upd.Status != nil {
		order.Status = *upd.Status
	}
	if upd.ETASet {
		order.EstimatedTime = upd.ETA
	}
	return nil
}

func (f *fakeOrderStore) InsertItemEvent(ctx context.Context, ev models.OrderItemStatusEvent) error {
	f.itemEvents = append(f.itemEvents, ev)
	return nil
}

func (f *fakeOrderStore) InsertOrderEvent(ctx context.Context, ev models.OrderStatusEvent) error {
	f.orderEvents = append(f.orderEvents, ev)
	return nil
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	copied := *order
	f.orders[order.ID] = &copied
	for i := range items {
		items[i].OrderID = order.ID
	}
	f.items[order.ID] = items
	return nil
}

type fakeRestaurantStore struct {
	restaurants map[string]*models.Restaurant
	tables      map[string]*models.Table
}

func newFakeRestaurantStore() *fakeRestaurantStore {
	return &fakeRestaurantStore{
		restaurants: map[string]*models.Restaurant{},
		tables:      map[string]*models.Table{},
	}
}

func (f *fakeRestaurantStore) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}

func (f *fakeRestaurantStore) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeRestaurantStore) GetOrCreateTable(ctx context.Context, restaurantID, tableNumber string) (*models.Table, error) {
	key := restaurantID + "/" + tableNumber
	if table, ok := f.tables[key]; ok {
		return table, nil
	}
	table := &models.Table{ID: "table-" + tableNumber, RestaurantID: restaurantID, TableNumber: tableNumber}
	f.tables[key] = table
	return table, nil
}

type fakeMenuReader struct {
	items map[string]*models.MenuItem
}

func (f *fakeMenuReader) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (f *fakeMenuReader) ListAvailable(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, item := range f.items {
		if item.RestaurantID == restaurantID && item.Available {
			out = append(out, *item)
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent int
	err  error
}

func (f *fakeMailer) SendOrderReceivedEmail(toEmail, restaurantName, trackCode, tableNumber string, total float64) error {
	f.sent++
	return f.err
}

const testRestaurantID = "rest-1"

func orderServiceFixture(t *testing.T) (*OrderService, *fakeOrderStore) {
	t.Helper()
	store := newFakeOrderStore()
	restaurants := newFakeRestaurantStore()
	restaurants.restaurants[testRestaurantID] = &models.Restaurant{
		ID: testRestaurantID, Slug: "warung-satu", RestaurantName: "Warung Satu", Email: "owner@example.com",
	}
	menu := &fakeMenuReader{items: map[string]*models.MenuItem{}}
	return NewOrderService(store, restaurants, menu, nil), store
}

func seedOrder(store *fakeOrderStore, orderID string, statuses ...models.ItemStatus) {
	store.orders[orderID] = &models.Order{
		ID: orderID, RestaurantID: testRestaurantID, Status: models.OrderStatusPending, TrackCode: "TRK-" + orderID,
	}
	items := []models.OrderItem{}
	for i, s := range statuses {
		items = append(items, models.OrderItem{
			ID:       orderID + "-item-" + string(rune('a'+i)),
			OrderID:  orderID,
			Status:   s,
			MenuItem: &models.MenuItemSummary{ID: "menu-1", Name: "Nasi Goreng"},
		})
	}
	store.items[orderID] = items
}

func TestUpdateItemStatusRecomputesOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending, models.ItemStatusServed)

	status, err := svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a",
		models.UpdateItemStatusRequest{Status: "Serve"})
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusServed, status)

	// Both items served, so the order is complete.
	assert.Equal(t, models.OrderStatusComplete, store.orders["order-1"].Status)

	require.Len(t, store.itemEvents, 1)
	assert.Equal(t, "Updated via dashboard", store.itemEvents[0].Notes)
	assert.Equal(t, testRestaurantID, store.itemEvents[0].UpdatedBy)

	require.Len(t, store.orderEvents, 1)
	assert.Equal(t, "Auto-updated based on individual item statuses", store.orderEvents[0].Note)
	assert.Equal(t, models.OrderStatusComplete, store.orderEvents[0].Status)
}

func TestUpdateItemStatusRepeatIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending, models.ItemStatusPending)

	first, err := svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a",
		models.UpdateItemStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	second, err := svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a",
		models.UpdateItemStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, models.ItemStatusConfirmed, store.items["order-1"][0].Status)
	assert.Equal(t, models.OrderStatusConfirmed, store.orders["order-1"].Status)

	// Every call leaves its own audit trail even when nothing changed.
	assert.Len(t, store.itemEvents, 2)
}

func TestUpdateItemStatusValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending)

	_, err := svc.UpdateItemStatus(ctx, testRestaurantID, "", "item", models.UpdateItemStatusRequest{Status: "ready"})
	requireKind(t, err, models.ErrKindValidation)

	_, err = svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a", models.UpdateItemStatusRequest{Status: "  "})
	requireKind(t, err, models.ErrKindValidation)

	_, err = svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a", models.UpdateItemStatusRequest{Status: "bogus"})
	requireKind(t, err, models.ErrKindValidation)

	_, err = svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "missing", models.UpdateItemStatusRequest{Status: "ready"})
	requireKind(t, err, models.ErrKindNotFound)

	_, err = svc.UpdateItemStatus(ctx, "other-restaurant", "order-1", "order-1-item-a", models.UpdateItemStatusRequest{Status: "ready"})
	requireKind(t, err, models.ErrKindAuthorization)
}

func TestUpdateItemStatusSurvivesRecomputeFailure(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending)
	store.listStatusesErr = errors.New("connection reset")

	status, err := svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", "order-1-item-a",
		models.UpdateItemStatusRequest{Status: "ready"})
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusReady, status)

	// The item moved but the order keeps its previous status.
	assert.Equal(t, models.ItemStatusReady, store.items["order-1"][0].Status)
	assert.Equal(t, models.OrderStatusPending, store.orders["order-1"].Status)
	assert.Empty(t, store.orderEvents)
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending, models.ItemStatusPending)

	step := func(itemID, token string, want models.OrderStatus) {
		t.Helper()
		_, err := svc.UpdateItemStatus(ctx, testRestaurantID, "order-1", itemID,
			models.UpdateItemStatusRequest{Status: token})
		require.NoError(t, err)
		assert.Equal(t, want, store.orders["order-1"].Status)
	}

	step("order-1-item-a", "confirmed", models.OrderStatusConfirmed)
	step("order-1-item-b", "confirmed", models.OrderStatusConfirmed)
	step("order-1-item-a", "preparing", models.OrderStatusPreparing)
	step("order-1-item-a", "ready", models.OrderStatusPreparing)
	step("order-1-item-b", "ready", models.OrderStatusReady)
	step("order-1-item-a", "Serve", models.OrderStatusReady)
	step("order-1-item-b", "Serve", models.OrderStatusComplete)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPending)

	err := svc.UpdateOrderStatus(ctx, testRestaurantID, "order-1", models.UpdateOrderStatusRequest{})
	requireKind(t, err, models.ErrKindValidation)

	served := "Served"
	err = svc.UpdateOrderStatus(ctx, testRestaurantID, "order-1", models.UpdateOrderStatusRequest{Status: &served})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, store.orders["order-1"].Status)

	require.Len(t, store.orderEvents, 1)
	assert.Equal(t, "Updated via dashboard", store.orderEvents[0].Note)
}

func TestGetOrderItems(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusReady, models.ItemStatusServed)

	resp, err := svc.GetOrderItems(ctx, testRestaurantID, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.Order.ID)
	assert.Len(t, resp.Items, 2)
	assert.True(t, resp.Stats.AllItemsReady)
	assert.False(t, resp.Stats.AllItemsServed)

	_, err = svc.GetOrderItems(ctx, "other-restaurant", "order-1")
	requireKind(t, err, models.ErrKindAuthorization)

	_, err = svc.GetOrderItems(ctx, testRestaurantID, "missing")
	requireKind(t, err, models.ErrKindNotFound)
}

func TestListEnhanced(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	for _, id := range []string{"order-1", "order-2", "order-3"} {
		seedOrder(store, id, models.ItemStatusPending)
	}
	// One item points at a deleted menu item and must be dropped.
	store.items["order-1"] = append(store.items["order-1"], models.OrderItem{
		ID: "orphan", OrderID: "order-1", Status: models.ItemStatusPending, MenuItem: nil,
	})

	resp, err := svc.ListEnhanced(ctx, testRestaurantID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.False(t, resp.Pagination.HasPreviousPage)

	for _, order := range resp.Data {
		for _, item := range order.Items {
			assert.NotNil(t, item.MenuItem)
		}
	}

	last, err := svc.ListEnhanced(ctx, testRestaurantID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Data, 1)
	assert.False(t, last.Pagination.HasNextPage)
	assert.True(t, last.Pagination.HasPreviousPage)
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	store := newFakeOrderStore()
	restaurants := newFakeRestaurantStore()
	restaurants.restaurants[testRestaurantID] = &models.Restaurant{
		ID: testRestaurantID, Slug: "warung-satu", RestaurantName: "Warung Satu", Email: "owner@example.com",
	}
	menu := &fakeMenuReader{items: map[string]*models.MenuItem{
		"menu-1": {ID: "menu-1", RestaurantID: testRestaurantID, Name: "Nasi Goreng", Price: 25000, Available: true},
		"menu-2": {ID: "menu-2", RestaurantID: testRestaurantID, Name: "Es Teh", Price: 5000, Available: false},
	}}
	mailer := &fakeMailer{}
	svc := NewOrderService(store, restaurants, menu, mailer)

	order, err := svc.PlaceOrder(ctx, "warung-satu", models.PlaceOrderRequest{
		TableNumber: "7",
		Items:       []models.PlaceOrderItemRequest{{MenuItemID: "menu-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50000), order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.TrackCode, "TRK-"))
	assert.Equal(t, 1, mailer.sent)
	require.Len(t, store.items[order.ID], 1)
	assert.Equal(t, float64(25000), store.items[order.ID][0].Price)

	_, err = svc.PlaceOrder(ctx, "no-such-slug", models.PlaceOrderRequest{
		TableNumber: "7",
		Items:       []models.PlaceOrderItemRequest{{MenuItemID: "menu-1", Quantity: 1}},
	})
	requireKind(t, err, models.ErrKindNotFound)

	_, err = svc.PlaceOrder(ctx, "warung-satu", models.PlaceOrderRequest{
		TableNumber: "7",
		Items:       []models.PlaceOrderItemRequest{{MenuItemID: "menu-2", Quantity: 1}},
	})
	requireKind(t, err, models.ErrKindValidation)

	_, err = svc.PlaceOrder(ctx, "warung-satu", models.PlaceOrderRequest{TableNumber: "7"})
	requireKind(t, err, models.ErrKindValidation)
}

func TestTrackOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := orderServiceFixture(t)
	seedOrder(store, "order-1", models.ItemStatusPreparing)

	resp, err := svc.TrackOrder(ctx, "TRK-order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.Order.ID)
	assert.True(t, resp.Stats.HasPreparingItems)

	_, err = svc.TrackOrder(ctx, "TRK-nope")
	requireKind(t, err, models.ErrKindNotFound)
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := models.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
}
