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
	ErrInvalidChef = errors.New("invalid chef")
)

// ChefService handles business logic for the chef roster
type ChefService struct {
	repo repository.ChefRepository
}

// NewChefService creates a new chef service
func NewChefService(repo repository.ChefRepository) *ChefService {
	return &ChefService{repo: repo}
}

// ListChefs returns the full roster
func (s *ChefService) ListChefs(ctx context.Context) ([]models.Chef, error) {
	return s.repo.GetAll(ctx)
}

// CreateChef validates and stores a new chef profile
func (s *ChefService) CreateChef(ctx context.Context, chef *models.Chef) error {
	if err := validateChef(chef); err != nil {
		return err
	}
	if chef.ID == "" {
		chef.ID = uuid.New().String()
	}
	return s.repo.Create(ctx, chef)
}

// UpdateChef validates and replaces an existing chef profile
func (s *ChefService) UpdateChef(ctx context.Context, chef *models.Chef) error {
	if chef.ID == "" {
		return repository.ErrChefNotFound
	}
	if err := validateChef(chef); err != nil {
		return err
	}
	return s.repo.Update(ctx, chef)
}

// DeleteChef removes a chef profile
func (s *ChefService) DeleteChef(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateChef(chef *models.Chef) error {
	if strings.TrimSpace(chef.Name) == "" {
		return ErrInvalidChef
	}
	if !models.ValidChefTitle(chef.Title) {
		return ErrInvalidChef
	}
	return nil
}
