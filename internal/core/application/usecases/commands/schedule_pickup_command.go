package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSchedulePickupCommandIsNotConstructed = errors.New(
	"SchedulePickupCommand must be created via NewSchedulePickupCommand constructor",
)

// SchedulePickupCommand represents booking the collection of an approved
// return: a date within the pickup window plus a time slot.
type SchedulePickupCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	date     time.Time
	timeSlot string
	by       string

	guard guard.ConstructorGuard
}

// NewSchedulePickupCommand creates a command to book a return pickup.
// Window validation happens in the aggregate, against the current time.
func NewSchedulePickupCommand(returnID kernel.UUID, date time.Time, timeSlot, by string) (SchedulePickupCommand, error) {
	cmd := SchedulePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := returnID.Validate(); err != nil {
		return SchedulePickupCommand{}, err
	}
	if date.IsZero() {
		return SchedulePickupCommand{}, errs.NewValueIsRequiredError("date")
	}
	if timeSlot == "" {
		return SchedulePickupCommand{}, errs.NewValueIsRequiredError("timeSlot")
	}
	if by == "" {
		return SchedulePickupCommand{}, errs.NewValueIsRequiredError("by")
	}

	cmd.returnID = returnID
	cmd.date = date
	cmd.timeSlot = timeSlot
	cmd.by = by

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SchedulePickupCommand) Validate() error {
	return c.guard.Validate(ErrSchedulePickupCommandIsNotConstructed)
}

// ReturnID returns the request to book a pickup for.
func (c SchedulePickupCommand) ReturnID() kernel.UUID { return c.returnID }

// Date returns the requested pickup date.
func (c SchedulePickupCommand) Date() time.Time { return c.date }

// TimeSlot returns the requested slot, e.g. "10:00-13:00".
func (c SchedulePickupCommand) TimeSlot() string { return c.timeSlot }

// By returns who books the pickup.
func (c SchedulePickupCommand) By() string { return c.by }
