// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
// This package implements the repository pattern for the cart domain aggregate, handling
// the conversion between domain entities and database representations.
package cartrepo

import (
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO represents the database structure for persisting cart aggregates.
// UpdatedAt is maintained by GORM and is not part of the domain model.
type CartDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Items     []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for cart entities.
// Overrides GORM's default naming convention to use "carts".
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents the database structure for persisting cart line items.
// Unit prices are stored as exact numerics so subtotals recomputed from rows
// match the domain arithmetic.
type CartItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	Note      string          `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for cart item entities.
// Overrides GORM's default naming convention to use "cart_items".
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart domain aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	cartID := aggregate.ID().Bytes()
	items := make([]CartItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		items = append(items, CartItemDTO{
			ID:        item.ID().Bytes(),
			CartID:    cartID,
			ProductID: item.ProductID().Bytes(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			Note:      item.Note(),
		})
	}

	return CartDTO{
		ID:    cartID,
		Items: items,
	}
}

// toDomain converts a database DTO to a cart domain aggregate.
// Reconstructs all line items and re-validates them using RestoreCart.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(id, items)
}

func itemToDomain(dto CartItemDTO) (*cart.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return cart.NewItem(id, productID, unitPrice, dto.Quantity, dto.Note)
}
