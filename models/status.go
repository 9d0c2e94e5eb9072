package models

import (
	"fmt"
	"strings"
)

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusConfirmed ItemStatus = "confirmed"
	ItemStatusPreparing ItemStatus = "preparing"
	ItemStatusReady     ItemStatus = "ready"
	ItemStatusServed    ItemStatus = "served"
	ItemStatusCancelled ItemStatus = "cancelled"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusComplete  OrderStatus = "complete"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Dashboards and older mobile clients send status tokens in whatever casing
// they happen to use, including the historical "Serve" button label.
var itemStatusForToken = map[string]ItemStatus{
	"Pending":   ItemStatusPending,
	"Confirmed": ItemStatusConfirmed,
	"Preparing": ItemStatusPreparing,
	"Ready":     ItemStatusReady,
	"Served":    ItemStatusServed,
	"Serve":     ItemStatusServed,
	"Cancelled": ItemStatusCancelled,

	"pending":   ItemStatusPending,
	"confirmed": ItemStatusConfirmed,
	"preparing": ItemStatusPreparing,
	"ready":     ItemStatusReady,
	"served":    ItemStatusServed,
	"cancelled": ItemStatusCancelled,
}

// Orders have no "served" state: both "Serve" and "Served" collapse to
// "ready", and "Complete" is only meaningful at the order level.
var orderStatusForToken = map[string]OrderStatus{
	"Pending":   OrderStatusPending,
	"Confirmed": OrderStatusConfirmed,
	"Preparing": OrderStatusPreparing,
	"Ready":     OrderStatusReady,
	"Serve":     OrderStatusReady,
	"Served":    OrderStatusReady,
	"Complete":  OrderStatusComplete,
	"Cancelled": OrderStatusCancelled,

	"pending":   OrderStatusPending,
	"confirmed": OrderStatusConfirmed,
	"preparing": OrderStatusPreparing,
	"ready":     OrderStatusReady,
	"served":    OrderStatusReady,
	"complete":  OrderStatusComplete,
	"cancelled": OrderStatusCancelled,
}

const (
	validItemStatuses  = "pending, confirmed, preparing, ready, served, cancelled"
	validOrderStatuses = "pending, confirmed, preparing, ready, complete, cancelled"
)

// ParseItemStatus resolves a client-supplied status token to the canonical
// item status. Lookup order: exact token, lowercased token, capitalized token.
func ParseItemStatus(token string) (ItemStatus, error) {
	normalized := strings.TrimSpace(token)
	if status, ok := itemStatusForToken[normalized]; ok {
		return status, nil
	}
	if status, ok := itemStatusForToken[strings.ToLower(normalized)]; ok {
		return status, nil
	}
	if status, ok := itemStatusForToken[capitalize(normalized)]; ok {
		return status, nil
	}
	return "", NewValidationError(fmt.Sprintf(
		"Unknown status value: %s. Valid values are: %s", token, validItemStatuses))
}

// ParseOrderStatus resolves a client-supplied status token to the canonical
// order status, using the order-level vocabulary.
func ParseOrderStatus(token string) (OrderStatus, error) {
	normalized := strings.TrimSpace(token)
	if status, ok := orderStatusForToken[normalized]; ok {
		return status, nil
	}
	if status, ok := orderStatusForToken[strings.ToLower(normalized)]; ok {
		return status, nil
	}
	if status, ok := orderStatusForToken[capitalize(normalized)]; ok {
		return status, nil
	}
	return "", NewValidationError(fmt.Sprintf(
		"Unknown status value: %s. Valid values are: %s", token, validOrderStatuses))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// OverallOrderStatus derives an order's status from its items' statuses.
// First matching rule wins:
//  1. any cancelled            -> cancelled
//  2. all served               -> complete
//  3. all ready or served      -> ready
//  4. any preparing            -> preparing
//  5. any confirmed            -> confirmed
//  6. otherwise (incl. empty)  -> pending
func OverallOrderStatus(itemStatuses []ItemStatus) OrderStatus {
	if len(itemStatuses) == 0 {
		return OrderStatusPending
	}

	allServed := true
	allReadyOrServed := true
	anyPreparing := false
	anyConfirmed := false

	for _, s := range itemStatuses {
		switch s {
		case ItemStatusCancelled:
			return OrderStatusCancelled
		case ItemStatusServed:
		case ItemStatusReady:
			allServed = false
		case ItemStatusPreparing:
			allServed = false
			allReadyOrServed = false
			anyPreparing = true
		case ItemStatusConfirmed:
			allServed = false
			allReadyOrServed = false
			anyConfirmed = true
		default:
			allServed = false
			allReadyOrServed = false
		}
	}

	switch {
	case allServed:
		return OrderStatusComplete
	case allReadyOrServed:
		return OrderStatusReady
	case anyPreparing:
		return OrderStatusPreparing
	case anyConfirmed:
		return OrderStatusConfirmed
	default:
		return OrderStatusPending
	}
}
