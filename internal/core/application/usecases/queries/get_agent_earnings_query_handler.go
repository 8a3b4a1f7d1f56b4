package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAgentEarningsQueryHandler retrieves the earnings summary straight from
// the database. Active load is counted from non-terminal assigned orders
// rather than the persisted active set, so the read model stays honest even
// if the two ever drift.
type GetAgentEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentEarningsQueryHandler creates a handler for earnings queries.
// Requires a GORM database connection for query execution.
func NewGetAgentEarningsQueryHandler(db *gorm.DB) GetAgentEarningsQueryHandler {
	return GetAgentEarningsQueryHandler{db: db}
}

// Handle executes the earnings query.
// Returns errs.ObjectNotFoundError when the agent is unknown.
func (h GetAgentEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetAgentEarningsQuery,
) (GetAgentEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAgentEarningsQueryResponse{}, err
	}

	response := GetAgentEarningsQueryResponse{AgentID: query.AgentID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			a.name,
			a.completed_deliveries,
			a.total_earnings,
			a.today_earnings,
			(
				SELECT COUNT(*)
				FROM orders o
				WHERE o.agent_id = a.id
				  AND o.status NOT IN ('delivered', 'cancelled', 'returned', 'failed')
			) AS active_orders
		FROM agents a
		WHERE a.id = ?
	`, query.AgentID().Bytes()).Row()

	err := row.Scan(
		&response.Name,
		&response.CompletedDeliveries,
		&response.TotalEarnings,
		&response.TodayEarnings,
		&response.ActiveOrders,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetAgentEarningsQueryResponse{}, errs.NewObjectNotFoundError("agentId", query.AgentID().String())
	}
	if err != nil {
		return GetAgentEarningsQueryResponse{}, err
	}

	return response, nil
}
