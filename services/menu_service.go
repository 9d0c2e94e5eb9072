package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"qr-dine/models"
	"qr-dine/repositories"

	"github.com/google/uuid"
)

type MenuStore interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	ListAvailable(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	SetPhotoURL(ctx context.Context, id, url string) error
	DeleteViaRoutine(ctx context.Context, id, restaurantID string) (bool, error)
	DeleteDirect(ctx context.Context, id, restaurantID string) (int64, error)
}

// OrderRefLookup is the slice of the order store the deletion guard needs.
type OrderRefLookup interface {
	FindOrderItemRefs(ctx context.Context, menuItemRef string) ([]models.OrderItemRef, error)
	GetOrdersByIDs(ctx context.Context, ids []string) ([]models.DebugOrder, error)
}

type MenuService struct {
	menu   MenuStore
	orders OrderRefLookup
}

func NewMenuService(menu MenuStore, orders OrderRefLookup) *MenuService {
	return &MenuService{menu: menu, orders: orders}
}

const deletionConflictMessage = "Cannot delete this menu item because it is used in existing orders. You can mark it as unavailable instead."

func (s *MenuService) List(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items, err := s.menu.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch menu items", err)
	}
	return items, nil
}

func (s *MenuService) ListAvailable(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items, err := s.menu.ListAvailable(ctx, restaurantID)
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch menu items", err)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	if id == "" {
		return nil, models.NewValidationError("Menu item ID is required")
	}
	item, err := s.menu.GetMenuItem(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Menu item not found.")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch menu item", err)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, restaurantID string, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if req.Price < 0 {
		return nil, models.NewValidationError("Price must be a valid positive number")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := &models.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Available:    available,
	}
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, models.NewInternalError("Failed to create menu item", err)
	}
	return item, nil
}

// ownedMenuItem fetches the item and verifies the caller's restaurant owns it.
func (s *MenuService) ownedMenuItem(ctx context.Context, restaurantID, id string) (*models.MenuItem, error) {
	if id == "" {
		return nil, models.NewValidationError("Menu item ID is required")
	}
	item, err := s.menu.GetMenuItem(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Menu item not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch menu item", err)
	}
	if item.RestaurantID != restaurantID {
		return nil, models.NewAuthorizationError("Unauthorized")
	}
	return item, nil
}

// Update applies a partial update: only supplied fields are persisted.
func (s *MenuService) Update(ctx context.Context, restaurantID, id string, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.ownedMenuItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, models.NewValidationError("Name cannot be empty if provided")
		}
		item.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, models.NewValidationError("Price must be a valid positive number if provided")
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.PhotoURL != nil {
		item.PhotoURL = req.PhotoURL
	}

	if err := s.menu.UpdateMenuItem(ctx, item); err != nil {
		return nil, models.NewInternalError("Failed to update menu item", err)
	}
	return item, nil
}

func (s *MenuService) SetPhotoURL(ctx context.Context, restaurantID, id, url string) (*models.MenuItem, error) {
	item, err := s.ownedMenuItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.menu.SetPhotoURL(ctx, id, url); err != nil {
		return nil, models.NewInternalError("Failed to update menu item photo", err)
	}
	item.PhotoURL = &url
	return item, nil
}

// Delete removes a menu item unless it is referenced by any order item.
//
// The reference column predates the UUID migration and is untyped, so the
// scan probes every plausible representation of the identifier (stored form,
// caller-supplied form, numeric casts of both) and unions the results before
// deciding. A foreign-key violation surfacing from either delete path is
// normalized to the same conflict, covering races the scan cannot see.
func (s *MenuService) Delete(ctx context.Context, restaurantID, callerID string) error {
	item, err := s.ownedMenuItem(ctx, restaurantID, callerID)
	if err != nil {
		return err
	}

	refs := s.scanReferences(ctx, item.ID, callerID)
	if len(refs) > 0 {
		return s.referenceConflict(ctx, refs)
	}

	ok, err := s.menu.DeleteViaRoutine(ctx, item.ID, restaurantID)
	if err == nil && ok {
		return nil
	}
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return models.NewConflictError(deletionConflictMessage, nil)
		}
		log.Println("Privileged delete routine failed, falling back to direct delete:", err)
	}

	rows, err := s.menu.DeleteDirect(ctx, item.ID, restaurantID)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return models.NewConflictError(deletionConflictMessage, nil)
		}
		return &models.AppError{
			Kind:    models.ErrKindValidation,
			Message: err.Error(),
			Code:    repositories.PgErrorCode(err),
		}
	}
	if rows == 0 {
		return models.NewNotFoundError("Menu item not found or already deleted")
	}
	return nil
}

// scanReferences unions reference lookups across every representation of the
// identifier, deduplicated by the referencing order item's own id. Individual
// probe failures are logged and skipped rather than failing the scan.
func (s *MenuService) scanReferences(ctx context.Context, storedID, callerID string) []models.OrderItemRef {
	refs := []models.OrderItemRef{}
	seen := map[string]bool{}

	for _, candidate := range referenceCandidates(storedID, callerID) {
		found, err := s.orders.FindOrderItemRefs(ctx, candidate)
		if err != nil {
			log.Printf("Reference check failed for %q: %v", candidate, err)
			continue
		}
		for _, ref := range found {
			if !seen[ref.ID] {
				seen[ref.ID] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// referenceCandidates lists the identifier representations to probe: the
// stored form, the caller-supplied form, and the numeric re-rendering of each
// when it parses as a number (legacy rows hold coerced numeric ids).
func referenceCandidates(storedID, callerID string) []string {
	candidates := []string{}
	seen := map[string]bool{}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			candidates = append(candidates, v)
		}
	}

	for _, base := range []string{storedID, callerID} {
		add(base)
		if n, err := strconv.Atoi(strings.TrimSpace(base)); err == nil {
			add(strconv.Itoa(n))
		}
	}
	return candidates
}

func (s *MenuService) referenceConflict(ctx context.Context, refs []models.OrderItemRef) error {
	orderIDs := []string{}
	seen := map[string]bool{}
	for _, ref := range refs {
		if !seen[ref.OrderID] {
			seen[ref.OrderID] = true
			orderIDs = append(orderIDs, ref.OrderID)
		}
	}

	orders, err := s.orders.GetOrdersByIDs(ctx, orderIDs)
	if err != nil {
		log.Println("Failed to fetch orders for deletion conflict:", err)
		orders = []models.DebugOrder{}
	}

	return models.NewConflictError(deletionConflictMessage, models.DeletionDebug{
		OrderItemsCount: len(refs),
		OrderItems:      refs,
		Orders:          orders,
	})
}
