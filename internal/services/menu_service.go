package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resto-backend/internal/apperr"
	"resto-backend/internal/cache"
	"resto-backend/internal/models"
	"resto-backend/internal/retry"
	"resto-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuService struct {
	menu    MenuStore
	gateway *retry.Gateway
	cache   *cache.Cache
	clock   timeutil.Clock
}

// NewMenuService takes the analytics cache so renames and deletes are not
// hidden behind cached item names.
func NewMenuService(menu MenuStore, gateway *retry.Gateway, c *cache.Cache, clock timeutil.Clock) *MenuService {
	if clock == nil {
		clock = time.Now
	}
	return &MenuService{menu: menu, gateway: gateway, cache: c, clock: clock}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.ListMenuItems(ctx)
}

// normalizePrice checks the price is a non-negative number and formats it
// to two places.
func normalizePrice(p models.Amount) (models.Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(string(p)))
	if err != nil {
		return "", &apperr.ValidationError{Message: fmt.Sprintf("price %q is not a number", string(p)), Err: err}
	}
	if d.IsNegative() {
		return "", apperr.Validation("price must not be negative")
	}
	return models.AmountFrom(d), nil
}

func (s *MenuService) build(id uuid.UUID, req *models.MenuItemRequest) (*models.MenuItem, error) {
	price, err := normalizePrice(req.Price)
	if err != nil {
		return nil, err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	now := s.clock()
	return &models.MenuItem{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Price:       price,
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *MenuService) Create(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.build(uuid.New(), req)
	if err != nil {
		return nil, err
	}
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Update(ctx context.Context, id uuid.UUID, req *models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.build(id, req)
	if err != nil {
		return nil, err
	}
	err = s.gateway.Do(ctx, "menu_items.update", func(ctx context.Context) error {
		return s.menu.UpdateMenuItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateAnalytics(ctx)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.gateway.Do(ctx, "menu_items.delete", func(ctx context.Context) error {
		return s.menu.DeleteMenuItem(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.InvalidateAnalytics(ctx)
	return nil
}
