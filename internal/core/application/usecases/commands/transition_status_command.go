package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionStatusCommandIsNotConstructed = errors.New(
	"TransitionStatusCommand must be created via NewTransitionStatusCommand constructor",
)

// TransitionStatusCommand represents a request to move an order forward in
// the fulfillment chain, e.g. processing → packed → shipped. The delivered
// status is unreachable this way; it requires OTP verification.
type TransitionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionStatusCommand creates a command to move an order to target.
// The note is optional; when empty a default history note is recorded.
func NewTransitionStatusCommand(orderID kernel.UUID, target order.Status, note string) (TransitionStatusCommand, error) {
	cmd := TransitionStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		target.Validate(),
	); err != nil {
		return TransitionStatusCommand{}, err
	}

	cmd.target = target
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c TransitionStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status to move to.
func (c TransitionStatusCommand) Target() order.Status {
	return c.target
}

// Note returns the optional history note.
func (c TransitionStatusCommand) Note() string {
	return c.note
}

func (c *TransitionStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
