package repositories

import (
	"context"
	"errors"
	"time"

	"qr-dine/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	db *pgxpool.Pool
}

func NewRestaurantRepository(db *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `id, owner_name, restaurant_name, slug, email, password_hash,
	phone, address, logo_url, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*models.Restaurant, error) {
	var r models.Restaurant
	err := row.Scan(&r.ID, &r.OwnerName, &r.RestaurantName, &r.Slug, &r.Email, &r.PasswordHash,
		&r.Phone, &r.Address, &r.LogoURL, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	return scanRestaurant(r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
}

func (r *RestaurantRepository) GetByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	return scanRestaurant(r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE email = $1`, email))
}

func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	return scanRestaurant(r.db.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE slug = $1`, slug))
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	now := time.Now()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO restaurants (id, owner_name, restaurant_name, slug, email, password_hash,
			phone, address, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		restaurant.ID, restaurant.OwnerName, restaurant.RestaurantName, restaurant.Slug,
		restaurant.Email, restaurant.PasswordHash, restaurant.Phone, restaurant.Address,
		restaurant.LogoURL, restaurant.CreatedAt, restaurant.UpdatedAt)
	return err
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET owner_name = $1, restaurant_name = $2, phone = $3, address = $4,
			logo_url = $5, updated_at = $6
		WHERE id = $7`,
		restaurant.OwnerName, restaurant.RestaurantName, restaurant.Phone,
		restaurant.Address, restaurant.LogoURL, restaurant.UpdatedAt, restaurant.ID)
	return err
}

// GetOrCreateTable resolves a table by number, creating it on first use so a
// freshly printed QR code works without dashboard setup.
func (r *RestaurantRepository) GetOrCreateTable(ctx context.Context, restaurantID, tableNumber string) (*models.Table, error) {
	var t models.Table
	err := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, table_number, created_at
		FROM tables WHERE restaurant_id = $1 AND table_number = $2`,
		restaurantID, tableNumber).Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.CreatedAt)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	t = models.Table{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		CreatedAt:    time.Now(),
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO tables (id, restaurant_id, table_number, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (restaurant_id, table_number) DO NOTHING`,
		t.ID, t.RestaurantID, t.TableNumber, t.CreatedAt)
	if err != nil {
		return nil, err
	}

	// A concurrent insert may have won the conflict; read back the winning row.
	err = r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, table_number, created_at
		FROM tables WHERE restaurant_id = $1 AND table_number = $2`,
		restaurantID, tableNumber).Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
