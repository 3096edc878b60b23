package queries

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads the confirmation view of an order from the
// database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order confirmation queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve the order confirmation view.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			token,
			status,
			subtotal,
			fulfillment_summary,
			estimated_time,
			payment_summary,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError(
			"order", query.OrderID().String())
	}

	var response GetOrderQueryResponse
	var id, token uuid.UUID
	var subtotal string

	err = rows.Scan(
		&id,
		&token,
		&response.Status,
		&subtotal,
		&response.FulfillmentSummary,
		&response.EstimatedTime,
		&response.PaymentSummary,
		&response.CreatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetOrderQueryResponse{}, idErr
	}
	response.ID = orderID

	orderToken, idErr := kernel.UUIDFromBytes(token[:])
	if idErr != nil {
		return GetOrderQueryResponse{}, idErr
	}
	response.Token = orderToken

	amount, amountErr := kernel.NewMoneyFromString(subtotal)
	if amountErr != nil {
		return GetOrderQueryResponse{}, amountErr
	}
	response.Subtotal = amount

	return response, nil
}
