// Package ports defines the contracts between the fulfillment core and
// infrastructure: repositories, the unit of work, and outbound services.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for delivery-agent
// aggregates, including their active order sets and earnings.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	// The agent must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent aggregate.
	// The agent must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent aggregate by its unique identifier.
	// Returns the complete agent with its active order set and earnings.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAllActive retrieves all active, approved agents.
	// Used by assignment flows to list candidates; capacity is checked
	// against the aggregate, not here.
	GetAllActive(ctx context.Context) ([]*agent.Agent, error)

	// ResetAllTodayEarnings zeroes the daily earnings counter of every
	// agent. Runs from the midnight reset job. Lifetime earnings and
	// completed delivery counts are untouched.
	ResetAllTodayEarnings(ctx context.Context) error
}
