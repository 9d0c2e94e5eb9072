package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"qr-dine/models"
	"qr-dine/repositories"

	"github.com/google/uuid"
)

// OrderStore is the persistence surface the order service depends on.
type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	GetOrderDetail(ctx context.Context, id string) (*models.OrderDetail, error)
	GetByTrackCode(ctx context.Context, trackCode string) (*models.OrderDetail, error)
	CountByRestaurant(ctx context.Context, restaurantID string) (int, error)
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]models.OrderDetail, error)
	GetItem(ctx context.Context, itemID, orderID string) (*models.OrderItem, error)
	ListItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	ListItemStatuses(ctx context.Context, orderID string) ([]models.ItemStatus, error)
	UpdateItem(ctx context.Context, itemID string, upd models.ItemStatusUpdate) error
	UpdateOrder(ctx context.Context, orderID string, upd models.OrderStatusUpdate) error
	InsertItemEvent(ctx context.Context, ev models.OrderItemStatusEvent) error
	InsertOrderEvent(ctx context.Context, ev models.OrderStatusEvent) error
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error
}

type RestaurantStore interface {
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	GetOrCreateTable(ctx context.Context, restaurantID, tableNumber string) (*models.Table, error)
}

type MenuReader interface {
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	ListAvailable(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
}

// Mailer sends best-effort owner notifications; may be nil when SMTP is not
// configured.
type Mailer interface {
	SendOrderReceivedEmail(toEmail, restaurantName, trackCode, tableNumber string, total float64) error
}

type OrderService struct {
	orders      OrderStore
	restaurants RestaurantStore
	menu        MenuReader
	mailer      Mailer
}

func NewOrderService(orders OrderStore, restaurants RestaurantStore, menu MenuReader, mailer Mailer) *OrderService {
	return &OrderService{orders: orders, restaurants: restaurants, menu: menu, mailer: mailer}
}

func (s *OrderService) ownedOrder(ctx context.Context, restaurantID, orderID string) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Order not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch order", err)
	}
	if order.RestaurantID != restaurantID {
		return nil, models.NewAuthorizationError("Unauthorized")
	}
	return order, nil
}

// UpdateItemStatus normalizes the client token, persists the item update with
// an audit event, then recomputes the parent order's status.
func (s *OrderService) UpdateItemStatus(ctx context.Context, restaurantID, orderID, itemID string, req models.UpdateItemStatusRequest) (models.ItemStatus, error) {
	if orderID == "" || itemID == "" {
		return "", models.NewValidationError("Missing orderId or itemId")
	}
	if strings.TrimSpace(req.Status) == "" {
		return "", models.NewValidationError("Status is required")
	}

	if _, err := s.ownedOrder(ctx, restaurantID, orderID); err != nil {
		return "", err
	}

	if _, err := s.orders.GetItem(ctx, itemID, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", models.NewNotFoundError("Order item not found")
		}
		return "", models.NewInternalError("Failed to fetch order item", err)
	}

	status, err := models.ParseItemStatus(req.Status)
	if err != nil {
		return "", err
	}

	upd := models.ItemStatusUpdate{
		Status: status,
		ETA:    req.EtaMinutes.Minutes(),
		ETASet: req.EtaMinutes.Provided(),
		Notes:  req.Notes,
	}
	if err := s.orders.UpdateItem(ctx, itemID, upd); err != nil {
		return "", models.NewInternalError("Failed to update order item status", err)
	}

	notes := req.Notes
	if notes == "" {
		notes = "Updated via dashboard"
	}
	if err := s.orders.InsertItemEvent(ctx, models.OrderItemStatusEvent{
		OrderItemID: itemID,
		Status:      status,
		Notes:       notes,
		UpdatedBy:   restaurantID,
	}); err != nil {
		log.Println("Failed to record item status event:", err)
	}

	s.recomputeOrderStatus(ctx, orderID)

	return status, nil
}

// recomputeOrderStatus derives and persists the order's aggregate status from
// its items. Failures are logged, never surfaced: the item update has already
// succeeded and the order simply keeps its previous status.
func (s *OrderService) recomputeOrderStatus(ctx context.Context, orderID string) {
	statuses, err := s.orders.ListItemStatuses(ctx, orderID)
	if err != nil {
		log.Println("Error updating overall order status:", err)
		return
	}
	if len(statuses) == 0 {
		return
	}

	overall := models.OverallOrderStatus(statuses)
	if err := s.orders.UpdateOrder(ctx, orderID, models.OrderStatusUpdate{Status: &overall}); err != nil {
		log.Println("Error updating overall order status:", err)
		return
	}

	if err := s.orders.InsertOrderEvent(ctx, models.OrderStatusEvent{
		OrderID: orderID,
		Status:  overall,
		Note:    "Auto-updated based on individual item statuses",
	}); err != nil {
		log.Println("Failed to record order status event:", err)
	}
}

// UpdateOrderStatus applies a direct order-level status and/or estimate change.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, restaurantID, orderID string, req models.UpdateOrderStatusRequest) error {
	if orderID == "" {
		return models.NewValidationError("Missing orderId")
	}
	if req.Status == nil && !req.EtaMinutes.Provided() {
		return models.NewValidationError("Nothing to update")
	}

	order, err := s.ownedOrder(ctx, restaurantID, orderID)
	if err != nil {
		return err
	}

	upd := models.OrderStatusUpdate{
		ETA:    req.EtaMinutes.Minutes(),
		ETASet: req.EtaMinutes.Provided(),
	}
	if req.Status != nil {
		status, err := models.ParseOrderStatus(*req.Status)
		if err != nil {
			return err
		}
		upd.Status = &status
	}

	if err := s.orders.UpdateOrder(ctx, orderID, upd); err != nil {
		return models.NewInternalError("Failed to update order", err)
	}

	eventStatus := order.Status
	if upd.Status != nil {
		eventStatus = *upd.Status
	}
	if err := s.orders.InsertOrderEvent(ctx, models.OrderStatusEvent{
		OrderID: orderID,
		Status:  eventStatus,
		Note:    "Updated via dashboard",
	}); err != nil {
		log.Println("Failed to record order status event:", err)
	}

	return nil
}

// GetOrderItems returns an order with its items and derived stats.
func (s *OrderService) GetOrderItems(ctx context.Context, restaurantID, orderID string) (*models.OrderItemsResponse, error) {
	if orderID == "" {
		return nil, models.NewValidationError("Missing orderId")
	}

	detail, err := s.orders.GetOrderDetail(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Order not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch order", err)
	}
	if detail.RestaurantID != restaurantID {
		return nil, models.NewAuthorizationError("Unauthorized")
	}

	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch order items", err)
	}

	return &models.OrderItemsResponse{
		Order: detail,
		Items: items,
		Stats: models.ComputeOrderStats(items),
	}, nil
}

// ListEnhanced returns a paginated order list with nested items and stats.
func (s *OrderService) ListEnhanced(ctx context.Context, restaurantID string, page, limit int) (*models.EnhancedOrdersResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	total, err := s.orders.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		log.Println("Error counting orders:", err)
	}

	orders, err := s.orders.ListByRestaurant(ctx, restaurantID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch orders", err)
	}

	enhanced := []models.EnhancedOrder{}
	for _, order := range orders {
		items, err := s.orders.ListItems(ctx, order.ID)
		if err != nil {
			// Keep the order in the listing even when its items cannot be read.
			log.Printf("Error fetching items for order %s: %v", order.ID, err)
			items = []models.OrderItem{}
		}

		// Drop rows whose menu item no longer exists.
		valid := items[:0]
		for _, item := range items {
			if item.MenuItem != nil {
				valid = append(valid, item)
			}
		}

		enhanced = append(enhanced, models.EnhancedOrder{
			OrderDetail: order,
			Items:       valid,
			Stats:       models.ComputeOrderStats(valid),
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &models.EnhancedOrdersResponse{
		Data: enhanced,
		Pagination: models.Pagination{
			Page:            page,
			Limit:           limit,
			Total:           total,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

// PlaceOrder creates a customer order with its items in one transaction.
// Prices always come from the menu, never from the client.
func (s *OrderService) PlaceOrder(ctx context.Context, slug string, req models.PlaceOrderRequest) (*models.Order, error) {
	restaurant, err := s.restaurants.GetBySlug(ctx, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Restaurant not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch restaurant", err)
	}

	if strings.TrimSpace(req.TableNumber) == "" {
		return nil, models.NewValidationError("Table number is required")
	}
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("Order must contain at least one item")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, models.NewValidationError("Item quantity must be at least 1")
		}
		menuItem, err := s.menu.GetMenuItem(ctx, line.MenuItemID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("Menu item not found: " + line.MenuItemID)
		}
		if err != nil {
			return nil, models.NewInternalError("Failed to fetch menu item", err)
		}
		if menuItem.RestaurantID != restaurant.ID {
			return nil, models.NewValidationError("Menu item does not belong to this restaurant")
		}
		if !menuItem.Available {
			return nil, models.NewValidationError("Menu item is not available: " + menuItem.Name)
		}

		var notes *string
		if line.Notes != "" {
			notes = &line.Notes
		}
		items = append(items, models.OrderItem{
			ID:          uuid.NewString(),
			MenuItemRef: menuItem.ID,
			Quantity:    line.Quantity,
			Price:       menuItem.Price,
			Status:      models.ItemStatusPending,
			Notes:       notes,
		})
		total += menuItem.Price * float64(line.Quantity)
	}

	table, err := s.restaurants.GetOrCreateTable(ctx, restaurant.ID, req.TableNumber)
	if err != nil {
		return nil, models.NewInternalError("Failed to resolve table", err)
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		RestaurantID: restaurant.ID,
		TableID:      table.ID,
		TrackCode:    newTrackCode(),
		Status:       models.OrderStatusPending,
		TotalAmount:  total,
		IsPrepaid:    req.IsPrepaid,
	}

	if err := s.orders.CreateOrder(ctx, order, items); err != nil {
		return nil, models.NewInternalError("Failed to create order", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderReceivedEmail(restaurant.Email, restaurant.RestaurantName,
			order.TrackCode, table.TableNumber, total); err != nil {
			log.Println("Failed to send order notification email:", err)
		}
	}

	return order, nil
}

// TrackOrder is the public customer view of an order by its track code.
func (s *OrderService) TrackOrder(ctx context.Context, trackCode string) (*models.OrderItemsResponse, error) {
	if trackCode == "" {
		return nil, models.NewValidationError("Missing track code")
	}

	detail, err := s.orders.GetByTrackCode(ctx, trackCode)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Order not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch order", err)
	}

	items, err := s.orders.ListItems(ctx, detail.ID)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch order items", err)
	}

	return &models.OrderItemsResponse{
		Order: detail,
		Items: items,
		Stats: models.ComputeOrderStats(items),
	}, nil
}

func newTrackCode() string {
	return "TRK-" + strings.ToUpper(uuid.NewString()[:8])
}
