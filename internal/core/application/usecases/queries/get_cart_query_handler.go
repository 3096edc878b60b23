package queries

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads a cart and its items from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query to retrieve the cart view.
// Returns errs.ErrObjectNotFound when the cart does not exist. Items are
// sorted by product name so the view is stable between reads; the subtotal
// is recomputed from the line totals on every read.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	exists, err := h.cartExists(ctx, query.CartID())
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	if !exists {
		return GetCartQueryResponse{}, errs.NewObjectNotFoundError("cart", query.CartID().String())
	}

	response := GetCartQueryResponse{
		CartID:   query.CartID(),
		Items:    make([]CartItemResponse, 0),
		Subtotal: kernel.ZeroMoney(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ci.id,
			ci.product_id,
			COALESCE(p.name, ''),
			ci.unit_price,
			ci.quantity,
			ci.note
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY p.name, ci.id
	`, query.CartID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItemResponse
		var id, productID uuid.UUID
		var unitPrice string

		err = rows.Scan(
			&id,
			&productID,
			&item.ProductName,
			&unitPrice,
			&item.Quantity,
			&item.Note,
		)
		if err != nil {
			return GetCartQueryResponse{}, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		item.ID = itemID

		itemProductID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		item.ProductID = itemProductID

		price, priceErr := kernel.NewMoneyFromString(unitPrice)
		if priceErr != nil {
			return GetCartQueryResponse{}, priceErr
		}
		item.UnitPrice = price

		total, totalErr := price.MulQuantity(item.Quantity)
		if totalErr != nil {
			return GetCartQueryResponse{}, totalErr
		}
		item.Total = total

		subtotal, sumErr := response.Subtotal.Add(total)
		if sumErr != nil {
			return GetCartQueryResponse{}, sumErr
		}
		response.Subtotal = subtotal

		response.Items = append(response.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}

func (h GetCartQueryHandler) cartExists(ctx context.Context, cartID kernel.UUID) (bool, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id FROM carts WHERE id = ?
	`, cartID.Bytes()).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	exists := rows.Next()
	if err = rows.Err(); err != nil {
		return false, err
	}

	return exists, nil
}
