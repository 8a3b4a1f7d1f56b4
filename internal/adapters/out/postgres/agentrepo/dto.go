// Package agentrepo provides data transfer objects and mapping functions for
// delivery-agent persistence. This package implements the repository pattern
// for the agent domain aggregate, handling the conversion between domain
// entities and database representations.
package agentrepo

import (
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// Earnings columns are mirrored by the read-side earnings query, which scans
// them directly without materializing the aggregate.
type AgentDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                string          `gorm:"type:varchar(255);not null"`
	Phone               string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	IsActive            bool            `gorm:"not null"`
	IsApproved          bool            `gorm:"not null"`
	MaxActiveOrders     int             `gorm:"type:int;not null"`
	CompletedDeliveries int             `gorm:"type:int;not null"`
	TotalEarnings       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TodayEarnings       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	ActiveOrders []ActiveOrderDTO `gorm:"foreignKey:AgentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// ActiveOrderDTO represents one order in an agent's active set.
// The composite key doubles as the uniqueness guarantee: an agent can carry
// an order at most once.
type ActiveOrderDTO struct {
	AgentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for active-order rows.
func (ActiveOrderDTO) TableName() string {
	return "agent_active_orders"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(a *agent.Agent) AgentDTO {
	agentID := a.ID().Bytes()

	activeOrders := make([]ActiveOrderDTO, 0, len(a.ActiveOrders()))
	for _, orderID := range a.ActiveOrders() {
		activeOrders = append(activeOrders, ActiveOrderDTO{
			AgentID: agentID,
			OrderID: orderID.Bytes(),
		})
	}

	return AgentDTO{
		ID:                  agentID,
		Name:                a.Name(),
		Phone:               a.Phone(),
		IsActive:            a.IsActive(),
		IsApproved:          a.IsApproved(),
		MaxActiveOrders:     a.MaxActiveOrders(),
		CompletedDeliveries: a.CompletedDeliveries(),
		TotalEarnings:       a.TotalEarnings().Amount(),
		TodayEarnings:       a.TodayEarnings().Amount(),
		ActiveOrders:        activeOrders,
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
// Reconstructs the complete aggregate including the active-order set and
// earnings counters using RestoreAgent.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	activeOrders := make([]kernel.UUID, 0, len(dto.ActiveOrders))
	for _, row := range dto.ActiveOrders {
		orderID, orderErr := kernel.UUIDFromBytes(row.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrders = append(activeOrders, orderID)
	}

	totalEarnings, err := kernel.NewMoney(dto.TotalEarnings)
	if err != nil {
		return nil, err
	}

	todayEarnings, err := kernel.NewMoney(dto.TodayEarnings)
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(agent.RestoreAgentParams{
		ID:                  id,
		Name:                dto.Name,
		Phone:               dto.Phone,
		IsActive:            dto.IsActive,
		IsApproved:          dto.IsApproved,
		ActiveOrders:        activeOrders,
		MaxActiveOrders:     dto.MaxActiveOrders,
		CompletedDeliveries: dto.CompletedDeliveries,
		TotalEarnings:       totalEarnings,
		TodayEarnings:       todayEarnings,
	})
}
