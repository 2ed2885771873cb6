package request

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// UserHeader is embedded in every input that acts on behalf of a user.
// Authentication happens upstream, the gateway forwards the user ID.
type UserHeader struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Authenticated user UUID"`
}

func (h UserHeader) User() (uuid.UUID, error) {
	id, err := uuid.FromString(h.UserID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "invalid X-User-ID")
	}
	return id, nil
}

// ParseID parses a UUID path parameter.
func ParseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return id, nil
}

// ServiceError maps service errors to HTTP errors. Anything unknown is a 500
// with msg as the detail.
func ServiceError(err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrBudgetExists):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrOverallBudgetDerived):
		return huma.NewError(http.StatusBadRequest, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
