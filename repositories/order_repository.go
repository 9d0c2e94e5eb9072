package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qr-dine/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, restaurant_id, table_id, track_code, status, total_amount,
	estimated_time, is_prepaid, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.RestaurantID, &o.TableID, &o.TrackCode, &o.Status,
		&o.TotalAmount, &o.EstimatedTime, &o.IsPrepaid, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

const orderDetailQuery = `
	SELECT o.id, o.restaurant_id, o.table_id, o.track_code, o.status, o.total_amount,
		o.estimated_time, o.is_prepaid, o.created_at, o.updated_at,
		t.table_number, r.id, r.restaurant_name
	FROM orders o
	JOIN restaurants r ON r.id = o.restaurant_id
	LEFT JOIN tables t ON t.id = o.table_id`

func scanOrderDetail(row pgx.Row) (*models.OrderDetail, error) {
	var d models.OrderDetail
	var tableNumber *string
	var restaurantID, restaurantName string
	err := row.Scan(&d.ID, &d.RestaurantID, &d.TableID, &d.TrackCode, &d.Status,
		&d.TotalAmount, &d.EstimatedTime, &d.IsPrepaid, &d.CreatedAt, &d.UpdatedAt,
		&tableNumber, &restaurantID, &restaurantName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if tableNumber != nil {
		d.Table = &models.TableSummary{TableNumber: *tableNumber}
	}
	d.Restaurant = &models.RestaurantSummary{ID: restaurantID, RestaurantName: restaurantName}
	return &d, nil
}

func (r *OrderRepository) GetOrderDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	return scanOrderDetail(r.db.QueryRow(ctx, orderDetailQuery+` WHERE o.id = $1`, id))
}

func (r *OrderRepository) GetByTrackCode(ctx context.Context, trackCode string) (*models.OrderDetail, error) {
	return scanOrderDetail(r.db.QueryRow(ctx, orderDetailQuery+` WHERE o.track_code = $1`, trackCode))
}

func (r *OrderRepository) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE restaurant_id = $1`, restaurantID).Scan(&total)
	return total, err
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]models.OrderDetail, error) {
	rows, err := r.db.Query(ctx, orderDetailQuery+`
		WHERE o.restaurant_id = $1
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`,
		restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.OrderDetail{}
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *detail)
	}
	return orders, rows.Err()
}

const orderItemQuery = `
	SELECT oi.id, oi.order_id, oi.menu_item, oi.quantity, oi.price, oi.status,
		oi.estimated_time, oi.notes, oi.created_at, oi.updated_at,
		m.id, m.name, m.description, m.photo_url
	FROM order_items oi
	LEFT JOIN menu_items m ON m.id = oi.menu_item`

func scanOrderItem(row pgx.Row) (*models.OrderItem, error) {
	var item models.OrderItem
	var menuID, menuName *string
	var menuDescription, menuPhotoURL *string
	err := row.Scan(&item.ID, &item.OrderID, &item.MenuItemRef, &item.Quantity, &item.Price,
		&item.Status, &item.EstimatedTime, &item.Notes, &item.CreatedAt, &item.UpdatedAt,
		&menuID, &menuName, &menuDescription, &menuPhotoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if menuID != nil && menuName != nil {
		item.MenuItem = &models.MenuItemSummary{
			ID:          *menuID,
			Name:        *menuName,
			Description: menuDescription,
			PhotoURL:    menuPhotoURL,
		}
	}
	return &item, nil
}

func (r *OrderRepository) GetItem(ctx context.Context, itemID, orderID string) (*models.OrderItem, error) {
	return scanOrderItem(r.db.QueryRow(ctx,
		orderItemQuery+` WHERE oi.id = $1 AND oi.order_id = $2`, itemID, orderID))
}

func (r *OrderRepository) ListItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx,
		orderItemQuery+` WHERE oi.order_id = $1 ORDER BY oi.created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListItemStatuses(ctx context.Context, orderID string) ([]models.ItemStatus, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := []models.ItemStatus{}
	for rows.Next() {
		var s models.ItemStatus
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *OrderRepository) UpdateItem(ctx context.Context, itemID string, upd models.ItemStatusUpdate) error {
	query := `UPDATE order_items SET status = $1, updated_at = $2`
	args := []interface{}{upd.Status, time.Now()}
	argIndex := 3

	if upd.ETASet {
		query += fmt.Sprintf(", estimated_time = $%d", argIndex)
		args = append(args, upd.ETA)
		argIndex++
	}
	if upd.Notes != "" {
		query += fmt.Sprintf(", notes = $%d", argIndex)
		args = append(args, upd.Notes)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, itemID)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, orderID string, upd models.OrderStatusUpdate) error {
	query := `UPDATE orders SET updated_at = $1`
	args := []interface{}{time.Now()}
	argIndex := 2

	if upd.Status != nil {
		query += fmt.Sprintf(", status = $%d", argIndex)
		args = append(args, *upd.Status)
		argIndex++
	}
	if upd.ETASet {
		query += fmt.Sprintf(", estimated_time = $%d", argIndex)
		args = append(args, upd.ETA)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, orderID)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *OrderRepository) InsertItemEvent(ctx context.Context, ev models.OrderItemStatusEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_item_status_events (order_item_id, status, notes, updated_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.OrderItemID, ev.Status, ev.Notes, ev.UpdatedBy, time.Now())
	return err
}

func (r *OrderRepository) InsertOrderEvent(ctx context.Context, ev models.OrderStatusEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_status_events (order_id, status, note, created_at)
		VALUES ($1, $2, $3, $4)`,
		ev.OrderID, ev.Status, ev.Note, time.Now())
	return err
}

// FindOrderItemRefs probes for order items referencing a menu item under one
// representation of its identifier.
func (r *OrderRepository) FindOrderItemRefs(ctx context.Context, menuItemRef string) ([]models.OrderItemRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_item FROM order_items
		WHERE menu_item = $1 LIMIT 5`, menuItemRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []models.OrderItemRef{}
	for rows.Next() {
		var ref models.OrderItemRef
		if err := rows.Scan(&ref.ID, &ref.OrderID, &ref.MenuItem); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *OrderRepository) GetOrdersByIDs(ctx context.Context, ids []string) ([]models.DebugOrder, error) {
	if len(ids) == 0 {
		return []models.DebugOrder{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, track_code, status, created_at FROM orders
		WHERE id = ANY($1) LIMIT 10`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.DebugOrder{}
	for rows.Next() {
		var o models.DebugOrder
		if err := rows.Scan(&o.ID, &o.TrackCode, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CreateOrder inserts the order and all its items in one transaction.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, restaurant_id, table_id, track_code, status, total_amount,
			estimated_time, is_prepaid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.RestaurantID, order.TableID, order.TrackCode, order.Status,
		order.TotalAmount, order.EstimatedTime, order.IsPrepaid, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, menu_item, quantity, price, status,
				estimated_time, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			items[i].ID, items[i].OrderID, items[i].MenuItemRef, items[i].Quantity,
			items[i].Price, items[i].Status, items[i].EstimatedTime, items[i].Notes,
			items[i].CreatedAt, items[i].UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
