package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "categories"

var columns = []any{"id", "user_id", "name", "type", "created_at"}

// Category is a user defined label for transactions.
type Category struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID uuid.UUID
	Name   string
	Type   string
}

// ICategoryTable defines the read operations on categories.
type ICategoryTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
}
