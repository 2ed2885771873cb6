package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/request"
)

// UpdateReceiptInput is the Huma input for attaching a receipt.
type UpdateReceiptInput struct {
	request.UserHeader
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body struct {
		ReceiptURL string `json:"receiptURL" required:"true" doc:"Receipt location, empty clears it"`
	}
}

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	request.UserHeader
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

type transactionModifier interface {
	UpdateReceipt(ctx context.Context, userID, id uuid.UUID, receiptURL string) error
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// ModifyTransactionHandler handles receipt updates and deletes. Amounts,
// categories and dates are immutable once recorded.
type ModifyTransactionHandler struct {
	TransactionService transactionModifier
}

func NewModifyTransactionHandler(svc transactionModifier) *ModifyTransactionHandler {
	return &ModifyTransactionHandler{TransactionService: svc}
}

func (h *ModifyTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction-receipt",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}/receipt",
		Summary:     "Update transaction receipt",
		Tags:        []string{"Transactions"},
	}, h.updateReceipt)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *ModifyTransactionHandler) updateReceipt(ctx context.Context, input *UpdateReceiptInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := request.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.UpdateReceipt(ctx, userID, id, input.Body.ReceiptURL); err != nil {
		return nil, request.ServiceError(err, "failed to update receipt")
	}
	return nil, nil
}

func (h *ModifyTransactionHandler) delete(ctx context.Context, input *DeleteTransactionInput) (*struct{}, error) {
	userID, err := input.User()
	if err != nil {
		return nil, err
	}
	id, err := request.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, userID, id); err != nil {
		return nil, request.ServiceError(err, "failed to delete transaction")
	}
	return nil, nil
}
