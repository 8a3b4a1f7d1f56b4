// Package productrepo provides data transfer objects and mapping functions
// for product persistence. Beyond the usual aggregate mapping it carries the
// inventory ledger: stock reservations are conditional single-statement
// decrements so concurrent orders can never oversell a product.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product aggregates.
type ProductDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"type:varchar(255);not null"`
	SKU               string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AvailableQuantity int             `gorm:"type:int;not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID().Bytes(),
		Name:              p.Name(),
		SKU:               p.SKU(),
		Price:             p.Price().Amount(),
		AvailableQuantity: p.Quantity(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.SKU, price, dto.AvailableQuantity)
}
