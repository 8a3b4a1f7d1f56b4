package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items, status history and OTP artifacts.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its human-facing number,
	// e.g. ORD-20260314-0042. Used by customer-facing tracking.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllByAgent retrieves the orders currently assigned to an agent
	// and not yet in a terminal status.
	GetAllByAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error)
}
