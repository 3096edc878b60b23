package queries

import (
	"context"
	"database/sql"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCheckoutSessionQueryHandler reads the progress view of a checkout
// session from the database.
type GetCheckoutSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetCheckoutSessionQueryHandler creates a handler for session progress
// queries. Requires a GORM database connection for query execution.
func NewGetCheckoutSessionQueryHandler(db *gorm.DB) GetCheckoutSessionQueryHandler {
	return GetCheckoutSessionQueryHandler{db: db}
}

// Handle executes the query to retrieve the session progress view.
// Returns errs.ErrObjectNotFound when the session does not exist.
// The subtotal and item count are computed from the snapshot rows the
// session captured, not from the live cart.
func (h GetCheckoutSessionQueryHandler) Handle(
	ctx context.Context,
	query GetCheckoutSessionQuery,
) (GetCheckoutSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCheckoutSessionQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.cart_id,
			s.step,
			s.fulfillment_type,
			s.submission_status,
			s.contact_name,
			s.contact_phone,
			s.contact_email,
			s.address_area,
			s.address_city,
			s.branch_name,
			s.scheduled_at,
			s.payment_method,
			s.order_id
		FROM checkout_sessions s
		WHERE s.id = ?
	`, query.SessionID().Bytes()).Rows()
	if err != nil {
		return GetCheckoutSessionQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCheckoutSessionQueryResponse{}, err
		}
		return GetCheckoutSessionQueryResponse{}, errs.NewObjectNotFoundError(
			"checkout session", query.SessionID().String())
	}

	var response GetCheckoutSessionQueryResponse
	var id, cartID uuid.UUID
	var contactName, contactPhone, contactEmail sql.NullString
	var deliveryArea, deliveryCity, branchName, paymentMethod sql.NullString
	var scheduledAt sql.NullTime
	var orderID uuid.NullUUID

	err = rows.Scan(
		&id,
		&cartID,
		&response.Step,
		&response.FulfillmentType,
		&response.SubmissionStatus,
		&contactName,
		&contactPhone,
		&contactEmail,
		&deliveryArea,
		&deliveryCity,
		&branchName,
		&scheduledAt,
		&paymentMethod,
		&orderID,
	)
	if err != nil {
		return GetCheckoutSessionQueryResponse{}, err
	}
	if err = rows.Err(); err != nil {
		return GetCheckoutSessionQueryResponse{}, err
	}

	sessionID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetCheckoutSessionQueryResponse{}, idErr
	}
	response.ID = sessionID

	sessionCartID, idErr := kernel.UUIDFromBytes(cartID[:])
	if idErr != nil {
		return GetCheckoutSessionQueryResponse{}, idErr
	}
	response.CartID = sessionCartID

	response.ContactName = contactName.String
	response.ContactPhone = contactPhone.String
	response.ContactEmail = contactEmail.String
	response.DeliveryArea = deliveryArea.String
	response.DeliveryCity = deliveryCity.String
	response.BranchName = branchName.String
	response.PaymentMethod = paymentMethod.String

	if scheduledAt.Valid {
		at := scheduledAt.Time
		response.ScheduledAt = &at
	}
	if orderID.Valid {
		linked, linkErr := kernel.UUIDFromBytes(orderID.UUID[:])
		if linkErr != nil {
			return GetCheckoutSessionQueryResponse{}, linkErr
		}
		response.OrderID = &linked
	}

	count, subtotal, err := h.snapshotTotals(ctx, query.SessionID())
	if err != nil {
		return GetCheckoutSessionQueryResponse{}, err
	}
	response.ItemCount = count
	response.Subtotal = subtotal

	return response, nil
}

func (h GetCheckoutSessionQueryHandler) snapshotTotals(
	ctx context.Context,
	sessionID kernel.UUID,
) (int, kernel.Money, error) {
	subtotal := kernel.ZeroMoney()
	count := 0

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT unit_price, quantity
		FROM checkout_session_items
		WHERE session_id = ?
	`, sessionID.Bytes()).Rows()
	if err != nil {
		return 0, kernel.Money{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var unitPrice string
		var quantity int

		if err = rows.Scan(&unitPrice, &quantity); err != nil {
			return 0, kernel.Money{}, err
		}

		price, priceErr := kernel.NewMoneyFromString(unitPrice)
		if priceErr != nil {
			return 0, kernel.Money{}, priceErr
		}
		total, totalErr := price.MulQuantity(quantity)
		if totalErr != nil {
			return 0, kernel.Money{}, totalErr
		}
		subtotal, err = subtotal.Add(total)
		if err != nil {
			return 0, kernel.Money{}, err
		}
		count += quantity
	}

	if err = rows.Err(); err != nil {
		return 0, kernel.Money{}, err
	}

	return count, subtotal, nil
}
