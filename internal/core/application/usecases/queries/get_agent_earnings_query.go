package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAgentEarningsQueryIsNotConstructed = errors.New(
	"GetAgentEarningsQuery must be created via NewGetAgentEarningsQuery constructor",
)

// GetAgentEarningsQuery retrieves an agent's earnings summary: lifetime and
// today's totals, completed deliveries and current load.
type GetAgentEarningsQuery struct {
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentEarningsQuery creates a query for an agent's earnings summary.
func NewGetAgentEarningsQuery(agentID kernel.UUID) (GetAgentEarningsQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAgentEarningsQuery{}, err
	}

	return GetAgentEarningsQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgentEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentEarningsQueryIsNotConstructed)
}

// AgentID returns the agent to summarize.
func (q GetAgentEarningsQuery) AgentID() kernel.UUID {
	return q.agentID
}

// GetAgentEarningsQueryResponse is the earnings read model.
type GetAgentEarningsQueryResponse struct {
	AgentID             kernel.UUID
	Name                string
	CompletedDeliveries int
	TotalEarnings       float64
	TodayEarnings       float64
	ActiveOrders        int
}
