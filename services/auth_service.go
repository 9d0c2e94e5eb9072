package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"qr-dine/models"
	"qr-dine/repositories"
	"qr-dine/utils"

	"github.com/google/uuid"
)

// RestaurantAccounts is the persistence surface behind owner registration,
// login and profile management.
type RestaurantAccounts interface {
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*models.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, restaurant *models.Restaurant) error
}

type AuthService struct {
	restaurants RestaurantAccounts
}

func NewAuthService(restaurants RestaurantAccounts) *AuthService {
	return &AuthService{restaurants: restaurants}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	if _, err := s.restaurants.GetByEmail(ctx, req.Email); err == nil {
		return nil, models.NewValidationError("Email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewInternalError("Failed to check email", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.RestaurantName)
	}
	if slug == "" {
		return nil, models.NewValidationError("Could not derive a slug from the restaurant name")
	}
	if _, err := s.restaurants.GetBySlug(ctx, slug); err == nil {
		return nil, models.NewValidationError("Slug already taken")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewInternalError("Failed to check slug", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, models.NewInternalError("Failed to hash password", err)
	}

	restaurant := &models.Restaurant{
		ID:             uuid.NewString(),
		OwnerName:      req.OwnerName,
		RestaurantName: req.RestaurantName,
		Slug:           slug,
		Email:          req.Email,
		PasswordHash:   hash,
		Phone:          req.Phone,
		Address:        req.Address,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, models.NewInternalError("Failed to create restaurant", err)
	}

	token, err := utils.GenerateToken(restaurant.ID, restaurant.Email)
	if err != nil {
		return nil, models.NewInternalError("Failed to generate token", err)
	}

	return &models.LoginResponse{Token: token, Restaurant: restaurant}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	restaurant, err := s.restaurants.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewAuthenticationError("Invalid email or password")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch account", err)
	}

	ok, err := utils.VerifyPassword(restaurant.PasswordHash, req.Password)
	if err != nil || !ok {
		return nil, models.NewAuthenticationError("Invalid email or password")
	}

	token, err := utils.GenerateToken(restaurant.ID, restaurant.Email)
	if err != nil {
		return nil, models.NewInternalError("Failed to generate token", err)
	}

	return &models.LoginResponse{Token: token, Restaurant: restaurant}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewNotFoundError("Restaurant not found")
	}
	if err != nil {
		return nil, models.NewInternalError("Failed to fetch profile", err)
	}
	return restaurant, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, restaurantID string, req models.UpdateProfileRequest) (*models.Restaurant, error) {
	restaurant, err := s.GetProfile(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.OwnerName != nil {
		if strings.TrimSpace(*req.OwnerName) == "" {
			return nil, models.NewValidationError("Owner name cannot be empty if provided")
		}
		restaurant.OwnerName = *req.OwnerName
	}
	if req.RestaurantName != nil {
		if strings.TrimSpace(*req.RestaurantName) == "" {
			return nil, models.NewValidationError("Restaurant name cannot be empty if provided")
		}
		restaurant.RestaurantName = *req.RestaurantName
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.LogoURL != nil {
		restaurant.LogoURL = req.LogoURL
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, models.NewInternalError("Failed to update profile", err)
	}
	return restaurant, nil
}
