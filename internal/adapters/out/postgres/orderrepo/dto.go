// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The token column is unique so one idempotency token can never yield two
// order rows.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Token              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	FulfillmentSummary string          `gorm:"type:varchar(255);not null"`
	EstimatedTime      string          `gorm:"type:varchar(64);not null"`
	PaymentSummary     string          `gorm:"type:varchar(64);not null"`
	Status             string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt          time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Token:              aggregate.Token().Bytes(),
		Subtotal:           aggregate.Subtotal().Decimal(),
		FulfillmentSummary: aggregate.FulfillmentSummary(),
		EstimatedTime:      aggregate.EstimatedTime(),
		PaymentSummary:     aggregate.PaymentSummary(),
		Status:             aggregate.Status().String(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	token, err := kernel.UUIDFromBytes(dto.Token[:])
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		token,
		subtotal,
		dto.FulfillmentSummary,
		dto.EstimatedTime,
		dto.PaymentSummary,
		status,
	)
}
