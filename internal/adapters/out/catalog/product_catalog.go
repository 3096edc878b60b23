// Package catalog provides the price and branch lookups checkout depends on.
// Prices come from the products table; pickup branches are a fixed list
// configured at startup.
package catalog

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO represents a purchasable product. Only the columns checkout
// needs are mapped; merchandising attributes live elsewhere.
type ProductDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:numeric(14,3);not null"`
}

// TableName specifies the database table name for product entities.
// Overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// GormPriceCatalog resolves product prices from the products table.
type GormPriceCatalog struct {
	db *gorm.DB
}

// NewGormPriceCatalog creates a price catalog backed by the given database.
func NewGormPriceCatalog(db *gorm.DB) *GormPriceCatalog {
	return &GormPriceCatalog{db: db}
}

// PriceOf returns the current unit price of a product.
func (c *GormPriceCatalog) PriceOf(ctx context.Context, productID kernel.UUID) (kernel.Money, error) {
	if err := productID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var dto ProductDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Money{}, errs.NewObjectNotFoundError("product", productID.String())
		}
		return kernel.Money{}, err
	}

	return kernel.NewMoney(dto.Price)
}
