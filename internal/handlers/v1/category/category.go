package category

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
	storagecategory "github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name"`
	Type      string `json:"type" doc:"income or expense"`
	CreatedAt string `json:"createdAt"`
}

type CreateCategoryInput struct {
	request.UserHeader
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"100"`
		Type string `json:"type,omitempty" enum:"income,expense" doc:"Defaults to expense"`
	}
}

type CreateCategoryOutput struct {
	Body Category
}

type ListCategoriesInput struct {
	request.UserHeader
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories"`
	}
}

type DeleteCategoryInput struct {
	request.UserHeader
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

type categoryService interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType transaction.Type) (*storagecategory.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*storagecategory.Category, error)
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

// Handler serves the category endpoints. Budgets and transactions that
// reference a deleted category keep their stored value.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func fromStorage(c *storagecategory.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	created, err := h.CategoryService.CreateCategory(ctx, userID, input.Body.Name, transaction.Type(input.Body.Type))
	if err != nil {
		return nil, request.ServiceError(err, "failed to create category")
	}
	return &CreateCategoryOutput{Body: fromStorage(created)}, nil
}

func (h *Handler) list(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, userID)
	if err != nil {
		return nil, request.ServiceError(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = fromStorage(c)
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := request.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.CategoryService.DeleteCategory(ctx, userID, id); err != nil {
		return nil, request.ServiceError(err, "failed to delete category")
	}
	return nil, nil
}
