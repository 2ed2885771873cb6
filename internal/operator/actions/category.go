package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

type CreateCategory struct {
	Create *category.CategoryCreate

	Result *category.Category
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Category.FindByName(ctx, c.Create.UserID, c.Create.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrCategoryExists
	}

	created, err := writer.Category.Insert(ctx, c.Create)
	if err != nil {
		return err
	}
	c.Result = created
	return nil
}

type DeleteCategory struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (c *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	found, err := writer.Category.Delete(ctx, c.UserID, c.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
