package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUnassignDeliveryCommandIsNotConstructed = errors.New(
	"UnassignDeliveryCommand must be created via NewUnassignDeliveryCommand constructor",
)

// UnassignDeliveryCommand represents a request to take an order away from
// its current agent: the slot is freed, both OTPs are cleared, and the
// order regresses to confirmed unless it already moved past processing.
type UnassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignDeliveryCommand creates a command to unassign orderID.
func NewUnassignDeliveryCommand(orderID kernel.UUID) (UnassignDeliveryCommand, error) {
	cmd := UnassignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return UnassignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUnassignDeliveryCommandIsNotConstructed)
}

// OrderID returns the order to unassign.
func (c UnassignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *UnassignDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
