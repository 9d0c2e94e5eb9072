package models

import "time"

type Restaurant struct {
	ID             string    `json:"id"`
	OwnerName      string    `json:"owner_name"`
	RestaurantName string    `json:"restaurant_name"`
	Slug           string    `json:"slug"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	LogoURL        *string   `json:"logo_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Table struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	TableNumber  string    `json:"table_number"`
	CreatedAt    time.Time `json:"created_at"`
}

type RestaurantSummary struct {
	ID             string `json:"id"`
	RestaurantName string `json:"restaurant_name"`
}

type TableSummary struct {
	TableNumber string `json:"table_number"`
}
