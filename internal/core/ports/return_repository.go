package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
)

// ReturnRepository defines the persistence contract for return requests.
//
// The storage layer enforces the single-open-return rule: at most one
// non-terminal request per (order, order item). Add surfaces a violation
// as errs.ConflictError.
type ReturnRepository interface {
	// Add persists a new return request.
	// Returns errs.ConflictError when the order item already has an open
	// return request.
	Add(ctx context.Context, aggregate *rma.ReturnRequest) error

	// Update persists changes to an existing return request.
	Update(ctx context.Context, aggregate *rma.ReturnRequest) error

	// Get retrieves a return request by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rma.ReturnRequest, error)

	// GetAllByOrder retrieves every return request filed against an order,
	// newest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*rma.ReturnRequest, error)
}
