package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

var (
	ErrInvalidMenuItem = errors.New("invalid menu item")
)

// MenuService handles business logic for the menu catalog
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// ListItems returns menu items, optionally filtered by category.
// An empty or "All" category returns everything.
func (s *MenuService) ListItems(ctx context.Context, category string) ([]models.MenuItem, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if category == "" || strings.EqualFold(category, "All") {
		return items, nil
	}

	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Category, category) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// GetItem returns a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateItem validates and stores a new menu item, assigning an id
func (s *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return s.repo.Create(ctx, item)
}

// UpdateItem validates and replaces an existing menu item
func (s *MenuService) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		return repository.ErrMenuItemNotFound
	}
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

// DeleteItem removes a menu item
func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateMenuItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrInvalidMenuItem
	}
	if item.Price < 0 {
		return ErrInvalidMenuItem
	}
	return nil
}
