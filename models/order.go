package models

import "time"

type Order struct {
	ID            string      `json:"id"`
	RestaurantID  string      `json:"restaurant_id"`
	TableID       string      `json:"table_id"`
	TrackCode     string      `json:"track_code"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	EstimatedTime *int        `json:"estimated_time"`
	IsPrepaid     bool        `json:"is_prepaid"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	MenuItemRef   string     `json:"-"`
	Quantity      int        `json:"quantity"`
	Price         float64    `json:"price"`
	Status        ItemStatus `json:"status"`
	EstimatedTime *int       `json:"estimated_time"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Joined menu item row; nil when the menu item no longer exists.
	MenuItem *MenuItemSummary `json:"menu_item,omitempty"`
}

// OrderDetail is an order with its table and restaurant relations resolved to
// a single canonical shape at the repository boundary.
type OrderDetail struct {
	Order
	Table      *TableSummary      `json:"table,omitempty"`
	Restaurant *RestaurantSummary `json:"restaurant,omitempty"`
}

type OrderStats struct {
	TotalItems        int            `json:"totalItems"`
	StatusCounts      map[string]int `json:"statusCounts"`
	AllItemsReady     bool           `json:"allItemsReady"`
	AllItemsServed    bool           `json:"allItemsServed"`
	HasPreparingItems bool           `json:"hasPreparingItems"`
}

// ComputeOrderStats derives the dashboard stats block for a set of items.
func ComputeOrderStats(items []OrderItem) OrderStats {
	stats := OrderStats{
		TotalItems:   len(items),
		StatusCounts: map[string]int{},
	}
	// With no items the all-* flags hold vacuously.
	allReady := true
	allServed := true
	for _, item := range items {
		stats.StatusCounts[string(item.Status)]++
		if item.Status != ItemStatusReady && item.Status != ItemStatusServed {
			allReady = false
		}
		if item.Status != ItemStatusServed {
			allServed = false
		}
		if item.Status == ItemStatusPreparing {
			stats.HasPreparingItems = true
		}
	}
	stats.AllItemsReady = allReady
	stats.AllItemsServed = allServed
	return stats
}

type EnhancedOrder struct {
	OrderDetail
	Items []OrderItem `json:"items"`
	Stats OrderStats  `json:"stats"`
}

type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type EnhancedOrdersResponse struct {
	Data       []EnhancedOrder `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type OrderItemsResponse struct {
	Order *OrderDetail `json:"order"`
	Items []OrderItem  `json:"items"`
	Stats OrderStats   `json:"stats"`
}

// OrderItemRef identifies an order item referencing a menu item; used by the
// deletion guard's debug payload.
type OrderItemRef struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	MenuItem string `json:"menu_item"`
}

// DebugOrder is the trimmed order row attached to deletion conflicts.
type DebugOrder struct {
	ID        string      `json:"id"`
	TrackCode string      `json:"track_code"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

type DeletionDebug struct {
	OrderItemsCount int            `json:"orderItemsCount"`
	OrderItems      []OrderItemRef `json:"orderItems"`
	Orders          []DebugOrder   `json:"orders"`
}

type OrderItemStatusEvent struct {
	OrderItemID string     `json:"order_item_id"`
	Status      ItemStatus `json:"status"`
	Notes       string     `json:"notes"`
	UpdatedBy   string     `json:"updated_by"`
}

type OrderStatusEvent struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Note    string      `json:"note"`
}

// ItemStatusUpdate carries the partial update applied to an order item:
// status always, estimated time only when the client supplied one, notes only
// when non-empty.
type ItemStatusUpdate struct {
	Status ItemStatus
	ETA    *int
	ETASet bool
	Notes  string
}

type OrderStatusUpdate struct {
	Status *OrderStatus
	ETA    *int
	ETASet bool
}
