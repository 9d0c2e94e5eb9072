package models

import (
	"encoding/json"
	"strconv"
)

// ETAMinutes mirrors the loosely typed "etaMinutes" client field. Clients send
// a number, a numeric string, or nothing. Anything not coercible to a non-zero
// number is stored as no estimate rather than rejected.
type ETAMinutes struct {
	set     bool
	minutes *int
}

func (e *ETAMinutes) UnmarshalJSON(data []byte) error {
	e.set = true
	e.minutes = nil

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		e.setFromFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			e.setFromFloat(parsed)
		}
		return nil
	}

	// null or any other shape: provided but not coercible
	return nil
}

func (e *ETAMinutes) setFromFloat(n float64) {
	if n == 0 {
		return
	}
	m := int(n)
	e.minutes = &m
}

func (e ETAMinutes) MarshalJSON() ([]byte, error) {
	if e.minutes == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*e.minutes)
}

// Provided reports whether the client sent the field at all.
func (e ETAMinutes) Provided() bool { return e.set }

// Minutes returns the coerced estimate, nil when absent or not coercible.
func (e ETAMinutes) Minutes() *int { return e.minutes }

type RegisterRequest struct {
	OwnerName      string `json:"owner_name" binding:"required,min=2"`
	RestaurantName string `json:"restaurant_name" binding:"required,min=2"`
	Slug           string `json:"slug" binding:"omitempty,lowercase"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone" binding:"omitempty"`
	Address        string `json:"address" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	OwnerName      *string `json:"owner_name"`
	RestaurantName *string `json:"restaurant_name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	LogoURL        *string `json:"logo_url"`
}

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    *string `json:"category"`
	Available   *bool   `json:"available"`
}

// UpdateMenuItemRequest is a partial update: only non-nil fields are applied.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Available   *bool    `json:"available"`
	PhotoURL    *string  `json:"photo_url"`
}

type UpdateItemStatusRequest struct {
	Status     string     `json:"status"`
	EtaMinutes ETAMinutes `json:"etaMinutes"`
	Notes      string     `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status     *string    `json:"status"`
	EtaMinutes ETAMinutes `json:"etaMinutes"`
}

type PlaceOrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

type PlaceOrderRequest struct {
	TableNumber string                  `json:"table_number" binding:"required"`
	Items       []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	IsPrepaid   bool                    `json:"is_prepaid"`
}
