package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordQualityCheckCommandIsNotConstructed = errors.New(
	"RecordQualityCheckCommand must be created via NewRecordQualityCheckCommand constructor",
)

// RecordQualityCheckCommand represents the warehouse inspection verdict on
// a received return. A failed check is terminal for the request.
type RecordQualityCheckCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	returnID kernel.UUID
	passed   bool
	notes    string
	by       string

	guard guard.ConstructorGuard
}

// NewRecordQualityCheckCommand creates a command recording the inspection verdict.
func NewRecordQualityCheckCommand(orderID, returnID kernel.UUID, passed bool, notes, by string) (RecordQualityCheckCommand, error) {
	cmd := RecordQualityCheckCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		returnID.Validate(),
	); err != nil {
		return RecordQualityCheckCommand{}, err
	}

	if by == "" {
		return RecordQualityCheckCommand{}, errs.NewValueIsRequiredError("by")
	}

	cmd.orderID = orderID
	cmd.returnID = returnID
	cmd.passed = passed
	cmd.notes = notes
	cmd.by = by

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordQualityCheckCommand) Validate() error {
	return c.guard.Validate(ErrRecordQualityCheckCommandIsNotConstructed)
}

// OrderID returns the order the return was filed against.
func (c RecordQualityCheckCommand) OrderID() kernel.UUID { return c.orderID }

// ReturnID returns the inspected request.
func (c RecordQualityCheckCommand) ReturnID() kernel.UUID { return c.returnID }

// Passed reports whether inspection cleared the items.
func (c RecordQualityCheckCommand) Passed() bool { return c.passed }

// Notes returns the inspector's notes.
func (c RecordQualityCheckCommand) Notes() string { return c.notes }

// By returns the inspecting actor.
func (c RecordQualityCheckCommand) By() string { return c.by }
