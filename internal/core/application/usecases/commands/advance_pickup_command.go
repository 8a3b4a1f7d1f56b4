package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvancePickupCommandIsNotConstructed = errors.New(
	"AdvancePickupCommand must be created via NewAdvancePickupCommand constructor",
)

// PickupAction is one step of the pickup leg of a return.
type PickupAction string

const (
	// PickupAssignAgent puts a delivery agent on the booked pickup.
	PickupAssignAgent PickupAction = "assign_agent"

	// PickupCompleted records collection from the customer.
	PickupCompleted PickupAction = "completed"

	// PickupInTransit records the items heading to the warehouse.
	PickupInTransit PickupAction = "in_transit"

	// PickupReceived records warehouse custody.
	PickupReceived PickupAction = "received"
)

// Validate checks if the PickupAction value is valid.
func (a PickupAction) Validate() error {
	switch a {
	case PickupAssignAgent, PickupCompleted, PickupInTransit, PickupReceived:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("pickup action",
			fmt.Errorf("%q is not a valid pickup action", string(a)))
	}
}

// AdvancePickupCommand represents one step of a return's pickup leg:
// assigning the collecting agent, recording collection, transit, or
// warehouse receipt.
type AdvancePickupCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	action   PickupAction
	agentID  *kernel.UUID
	by       string

	guard guard.ConstructorGuard
}

// NewAdvancePickupCommand creates a command to advance a return's pickup.
// The assign_agent action requires an agent identifier; the rest forbid it.
func NewAdvancePickupCommand(returnID kernel.UUID, action PickupAction, agentID *kernel.UUID, by string) (AdvancePickupCommand, error) {
	cmd := AdvancePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		returnID.Validate(),
		action.Validate(),
	); err != nil {
		return AdvancePickupCommand{}, err
	}

	if by == "" {
		return AdvancePickupCommand{}, errs.NewValueIsRequiredError("by")
	}

	if action == PickupAssignAgent {
		if agentID == nil {
			return AdvancePickupCommand{}, errs.NewValueIsRequiredError("agentId")
		}
		if err := agentID.Validate(); err != nil {
			return AdvancePickupCommand{}, err
		}
	} else if agentID != nil {
		return AdvancePickupCommand{}, errs.NewValueIsInvalidError("agentId")
	}

	cmd.returnID = returnID
	cmd.action = action
	cmd.agentID = agentID
	cmd.by = by

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvancePickupCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePickupCommandIsNotConstructed)
}

// ReturnID returns the request whose pickup advances.
func (c AdvancePickupCommand) ReturnID() kernel.UUID { return c.returnID }

// Action returns the pickup step to apply.
func (c AdvancePickupCommand) Action() PickupAction { return c.action }

// AgentID returns the collecting agent for assign_agent, nil otherwise.
func (c AdvancePickupCommand) AgentID() *kernel.UUID { return c.agentID }

// By returns who records the step.
func (c AdvancePickupCommand) By() string { return c.by }
