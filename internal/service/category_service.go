package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type CategoryService struct {
	categories CategoryStore
	processor  actionProcessor
}

func NewCategoryService(categories CategoryStore, processor actionProcessor) *CategoryService {
	return &CategoryService{categories: categories, processor: processor}
}

// CreateCategory defaults the type to expense.
func (s *CategoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType transaction.Type) (*category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}
	if categoryType == "" {
		categoryType = transaction.TypeExpense
	}
	if !categoryType.Valid() {
		return nil, ErrInvalidType
	}

	action := &actions.CreateCategory{
		Create: &category.CategoryCreate{UserID: userID, Name: name, Type: string(categoryType)},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Result, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	return s.categories.List(ctx, userID)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteCategory{UserID: userID, ID: id})
}
