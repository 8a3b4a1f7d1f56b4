// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-order locking,
// transaction management, persistence, then collaborator calls after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AgentRepoFactory provides access to the agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// ProductRepoFactory provides access to the inventory ledger within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// ReturnRepoFactory provides access to the return repository within a transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// CounterFactory provides access to the order-number counter within a transaction.
	CounterFactory interface {
		CounterStore() ports.CounterStore
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages transactions for order placement: the order
	// itself, the stock reservations backing it, and the number counter.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CounterFactory
	}

	// CreateOrderUoWFactory creates new order placement unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// CancelOrderUoW manages transactions for cancellation: the order, the
	// stock going back to the ledger, and the agent slot being freed.
	CancelOrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		AgentRepoFactory
	}

	// CancelOrderUoWFactory creates new cancellation unit of work instances.
	CancelOrderUoWFactory interface {
		Create() CancelOrderUoW
	}

	// AssignmentUoW manages transactions coordinating order and agent
	// aggregates: assignment, unassignment and delivery confirmation.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		AgentRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// ReturnUoW manages transactions for the return pipeline: the request
	// plus the denormalized marker on the order item.
	ReturnUoW interface {
		TxManager
		ReturnRepoFactory
		OrderRepoFactory
	}

	// ReturnUoWFactory creates new return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// PickupUoW manages transactions for the pickup leg of a return, which
	// may put an agent on the collection.
	PickupUoW interface {
		TxManager
		ReturnRepoFactory
		AgentRepoFactory
	}

	// PickupUoWFactory creates new pickup unit of work instances.
	PickupUoWFactory interface {
		Create() PickupUoW
	}

	// SettleReturnUoW manages transactions for return settlement, which
	// additionally restocks the returned quantity.
	SettleReturnUoW interface {
		TxManager
		ReturnRepoFactory
		OrderRepoFactory
		ProductRepoFactory
	}

	// SettleReturnUoWFactory creates new settlement unit of work instances.
	SettleReturnUoWFactory interface {
		Create() SettleReturnUoW
	}

	// AgentUoW manages transactions for agent-only maintenance operations.
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	// AgentUoWFactory creates new agent unit of work instances.
	AgentUoWFactory interface {
		Create() AgentUoW
	}
)
