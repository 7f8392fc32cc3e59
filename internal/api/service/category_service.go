package service

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/category"
)

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	logger     *slog.Logger
	categories category.Repository
}

// NewCategoryService creates a new category service
func NewCategoryService(logger *slog.Logger, categories category.Repository) CategoryService {
	return &CategoryServiceImpl{
		logger:     logger,
		categories: categories,
	}
}

func (s *CategoryServiceImpl) Create(ctx context.Context, name, icon, color string, categoryType category.Type) (*category.Category, error) {
	c, err := category.New(name, icon, color, categoryType)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id int64) (*category.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryServiceImpl) List(ctx context.Context, typeFilter category.Type) ([]*category.Category, error) {
	if typeFilter != "" && !typeFilter.Valid() {
		return nil, category.ErrInvalidType
	}
	return s.categories.List(ctx, typeFilter)
}
