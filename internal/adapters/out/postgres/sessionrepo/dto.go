// Package sessionrepo provides data transfer objects and mapping functions for
// checkout session persistence. A session row carries everything the shopper
// has filled in so far; optional steps map to nullable columns, and the cart
// snapshot maps to child rows in checkout_session_items.
package sessionrepo

import (
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionDTO represents the database structure for persisting checkout
// session aggregates. UpdatedAt is maintained by GORM and drives the
// stale-session cleanup cutoff.
type SessionDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID uuid.UUID `gorm:"type:uuid;not null;index"`
	Token  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Step             string `gorm:"type:varchar(32);not null"`
	FulfillmentType  string `gorm:"type:varchar(16);not null"`
	SubmissionStatus string `gorm:"type:varchar(16);not null;index"`

	ContactName  *string `gorm:"type:varchar(255)"`
	ContactPhone *string `gorm:"type:varchar(32)"`
	ContactEmail *string `gorm:"type:varchar(255)"`

	AddressStreet    *string `gorm:"type:varchar(255)"`
	AddressBuilding  *string `gorm:"type:varchar(255)"`
	AddressArea      *string `gorm:"type:varchar(255)"`
	AddressCity      *string `gorm:"type:varchar(255)"`
	AddressFloor     *string `gorm:"type:varchar(32)"`
	AddressApartment *string `gorm:"type:varchar(32)"`
	AddressNotes     *string `gorm:"type:varchar(255)"`

	BranchID             *uuid.UUID `gorm:"type:uuid"`
	BranchName           *string    `gorm:"type:varchar(255)"`
	BranchAddress        *string    `gorm:"type:varchar(255)"`
	BranchPhone          *string    `gorm:"type:varchar(32)"`
	BranchPickupEstimate *string    `gorm:"type:varchar(64)"`

	ScheduledAt *time.Time

	PaymentMethod *string `gorm:"type:varchar(16)"`
	CardNumber    *string `gorm:"type:varchar(32)"`
	CardHolder    *string `gorm:"type:varchar(255)"`
	CardExpiry    *string `gorm:"type:varchar(8)"`
	CardCVV       *string `gorm:"column:card_cvv;type:varchar(8)"`

	OrderID *uuid.UUID `gorm:"type:uuid"`

	Items []SessionItemDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`

	UpdatedAt time.Time
}

// TableName specifies the database table name for session entities.
// Overrides GORM's default naming convention to use "checkout_sessions".
func (SessionDTO) TableName() string {
	return "checkout_sessions"
}

// SessionItemDTO represents one snapshot line captured when checkout started
// or when the snapshot was last refreshed. Snapshot lines have no domain
// identity, so rows carry a surrogate key and are replaced wholesale on
// update.
type SessionItemDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	SessionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	Note      string          `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for snapshot line entities.
// Overrides GORM's default naming convention to use "checkout_session_items".
func (SessionItemDTO) TableName() string {
	return "checkout_session_items"
}

// fromDomain converts a session domain aggregate to its database
// representation. Steps the shopper has not completed map to NULL columns.
func fromDomain(aggregate *checkout.Session) SessionDTO {
	sessionID := aggregate.ID().Bytes()

	dto := SessionDTO{
		ID:               sessionID,
		CartID:           aggregate.CartID().Bytes(),
		Token:            aggregate.Token().Bytes(),
		Step:             aggregate.Step().String(),
		FulfillmentType:  aggregate.FulfillmentType().String(),
		SubmissionStatus: aggregate.SubmissionStatus().String(),
	}

	if contact, ok := aggregate.Contact(); ok {
		dto.ContactName = ptr(contact.Name())
		dto.ContactPhone = ptr(contact.Phone())
		dto.ContactEmail = ptr(contact.Email())
	}

	if fulfillment, ok := aggregate.Fulfillment(); ok {
		applyFulfillment(&dto, fulfillment)
	}

	if payment, ok := aggregate.Payment(); ok {
		dto.PaymentMethod = ptr(payment.Method().String())
		if card, hasCard := payment.Card(); hasCard {
			dto.CardNumber = ptr(card.Number())
			dto.CardHolder = ptr(card.HolderName())
			dto.CardExpiry = ptr(card.Expiry())
			dto.CardCVV = ptr(card.CVV())
		}
	}

	if orderID, ok := aggregate.OrderID(); ok {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}

	items := make([]SessionItemDTO, 0, len(aggregate.Snapshot().Items()))
	for _, item := range aggregate.Snapshot().Items() {
		items = append(items, SessionItemDTO{
			SessionID: sessionID,
			ProductID: item.ProductID.Bytes(),
			UnitPrice: item.UnitPrice.Decimal(),
			Quantity:  item.Quantity,
			Note:      item.Note,
		})
	}
	dto.Items = items

	return dto
}

func applyFulfillment(dto *SessionDTO, fulfillment checkout.Fulfillment) {
	if address, ok := fulfillment.Address(); ok {
		dto.AddressStreet = ptr(address.Street())
		dto.AddressBuilding = ptr(address.Building())
		dto.AddressArea = ptr(address.Area())
		dto.AddressCity = ptr(address.City())
		dto.AddressFloor = ptr(address.Floor())
		dto.AddressApartment = ptr(address.Apartment())
		dto.AddressNotes = ptr(address.Notes())
	}
	if branch, ok := fulfillment.Branch(); ok {
		raw := branch.ID().Bytes()
		dto.BranchID = &raw
		dto.BranchName = ptr(branch.Name())
		dto.BranchAddress = ptr(branch.Address())
		dto.BranchPhone = ptr(branch.Phone())
		dto.BranchPickupEstimate = ptr(branch.PickupEstimate())
	}
	if at, ok := fulfillment.TimeSelection().ScheduledAt(); ok {
		dto.ScheduledAt = &at
	}
}

// toDomain converts a database DTO to a session domain aggregate.
// Reconstructs the snapshot and all completed steps using RestoreSession,
// which re-validates every invariant.
func toDomain(dto SessionDTO) (*checkout.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	cartID, err := kernel.UUIDFromBytes(dto.CartID[:])
	if err != nil {
		return nil, err
	}
	token, err := kernel.UUIDFromBytes(dto.Token[:])
	if err != nil {
		return nil, err
	}

	step, err := checkout.StepFromString(dto.Step)
	if err != nil {
		return nil, err
	}
	fulfillmentType, err := checkout.FulfillmentTypeFromString(dto.FulfillmentType)
	if err != nil {
		return nil, err
	}
	submission, err := checkout.SubmissionStatusFromString(dto.SubmissionStatus)
	if err != nil {
		return nil, err
	}

	snapshot, err := snapshotToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	contact, err := contactToDomain(dto)
	if err != nil {
		return nil, err
	}

	fulfillment, err := fulfillmentToDomain(dto)
	if err != nil {
		return nil, err
	}

	payment, err := paymentToDomain(dto)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return checkout.RestoreSession(
		id, cartID, token, snapshot,
		contact, fulfillmentType, fulfillment, payment, orderID,
		step, submission,
	)
}

func snapshotToDomain(items []SessionItemDTO) (cart.Snapshot, error) {
	snapshotItems := make([]cart.SnapshotItem, 0, len(items))
	for _, item := range items {
		productID, err := kernel.UUIDFromBytes(item.ProductID[:])
		if err != nil {
			return cart.Snapshot{}, err
		}
		unitPrice, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return cart.Snapshot{}, err
		}
		snapshotItems = append(snapshotItems, cart.SnapshotItem{
			ProductID: productID,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			Note:      item.Note,
		})
	}

	return cart.RestoreSnapshot(snapshotItems)
}

func contactToDomain(dto SessionDTO) (*checkout.ContactInfo, error) {
	if dto.ContactName == nil {
		return nil, nil //nolint:nilnil //absent optional step
	}

	contact, err := checkout.NewContactInfo(
		deref(dto.ContactName),
		deref(dto.ContactPhone),
		deref(dto.ContactEmail),
	)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func fulfillmentToDomain(dto SessionDTO) (*checkout.Fulfillment, error) {
	timeSelection := checkout.ImmediateTime()
	if dto.ScheduledAt != nil {
		timeSelection = checkout.RestoreScheduledTime(*dto.ScheduledAt)
	}

	switch {
	case dto.AddressStreet != nil:
		address, err := checkout.NewAddressInfo(
			deref(dto.AddressStreet),
			deref(dto.AddressBuilding),
			deref(dto.AddressArea),
			deref(dto.AddressCity),
			deref(dto.AddressFloor),
			deref(dto.AddressApartment),
			deref(dto.AddressNotes),
		)
		if err != nil {
			return nil, err
		}
		fulfillment, err := checkout.NewDeliveryFulfillment(address, timeSelection)
		if err != nil {
			return nil, err
		}
		return &fulfillment, nil

	case dto.BranchID != nil:
		branchID, err := kernel.UUIDFromBytes((*dto.BranchID)[:])
		if err != nil {
			return nil, err
		}
		branch, err := checkout.NewBranch(
			branchID,
			deref(dto.BranchName),
			deref(dto.BranchAddress),
			deref(dto.BranchPhone),
			deref(dto.BranchPickupEstimate),
		)
		if err != nil {
			return nil, err
		}
		fulfillment, err := checkout.NewPickupFulfillment(branch, timeSelection)
		if err != nil {
			return nil, err
		}
		return &fulfillment, nil

	default:
		return nil, nil //nolint:nilnil //absent optional step
	}
}

func paymentToDomain(dto SessionDTO) (*checkout.PaymentSelection, error) {
	if dto.PaymentMethod == nil {
		return nil, nil //nolint:nilnil //absent optional step
	}

	method, err := checkout.PaymentMethodFromString(deref(dto.PaymentMethod))
	if err != nil {
		return nil, err
	}

	if method == checkout.PaymentMethodCard {
		card, cardErr := checkout.RestoreCard(
			deref(dto.CardNumber),
			deref(dto.CardHolder),
			deref(dto.CardExpiry),
			deref(dto.CardCVV),
		)
		if cardErr != nil {
			return nil, cardErr
		}
		payment, paymentErr := checkout.NewCardPayment(card)
		if paymentErr != nil {
			return nil, paymentErr
		}
		return &payment, nil
	}

	payment := checkout.NewCashPayment()
	return &payment, nil
}

func ptr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
