package repositories

import (
	"context"
	"errors"
	"time"

	"qr-dine/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuItemColumns = `id, restaurant_id, name, description, price, category,
	available, photo_url, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var m models.MenuItem
	err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price,
		&m.Category, &m.Available, &m.PhotoURL, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price,
			&m.Category, &m.Available, &m.PhotoURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	return r.listByQuery(ctx, `
		SELECT `+menuItemColumns+` FROM menu_items
		WHERE restaurant_id = $1 ORDER BY created_at DESC`, restaurantID)
}

func (r *MenuRepository) ListAvailable(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	return r.listByQuery(ctx, `
		SELECT `+menuItemColumns+` FROM menu_items
		WHERE restaurant_id = $1 AND available = true ORDER BY created_at DESC`, restaurantID)
}

func (r *MenuRepository) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return scanMenuItem(r.db.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id))
}

func (r *MenuRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	_, err := r.db.Exec(ctx, `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, category,
			available, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.RestaurantID, item.Name, item.Description, item.Price,
		item.Category, item.Available, item.PhotoURL, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *MenuRepository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	item.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, available = $5,
			photo_url = $6, updated_at = $7
		WHERE id = $8`,
		item.Name, item.Description, item.Price, item.Category, item.Available,
		item.PhotoURL, item.UpdatedAt, item.ID)
	return err
}

func (r *MenuRepository) SetPhotoURL(ctx context.Context, id, url string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE menu_items SET photo_url = $1, updated_at = $2 WHERE id = $3`,
		url, time.Now(), id)
	return err
}

// DeleteViaRoutine calls the privileged server-side delete function. A false
// result means the function ran but removed nothing.
func (r *MenuRepository) DeleteViaRoutine(ctx context.Context, id, restaurantID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT delete_menu_item($1, $2)`, id, restaurantID).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteDirect removes the row, scoped by restaurant ownership as a safety
// predicate. Returns the number of rows deleted.
func (r *MenuRepository) DeleteDirect(ctx context.Context, id, restaurantID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`, id, restaurantID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
