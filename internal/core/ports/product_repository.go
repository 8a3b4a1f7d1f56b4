package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the inventory
// ledger. Reserve and Release are the only ways order flows touch stock.
type ProductRepository interface {
	// Add persists a new product to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// Reserve atomically decrements available stock by quantity.
	// The decrement is conditional on sufficient stock: a concurrent
	// reservation can never drive the quantity negative. Returns
	// product.InsufficientStockError when stock does not cover the request.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) error

	// Release returns previously reserved stock to the ledger, for
	// cancellations and completed returns.
	Release(ctx context.Context, id kernel.UUID, quantity int) error
}
