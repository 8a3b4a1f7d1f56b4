package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrResetDailyEarningsCommandIsNotConstructed = errors.New(
	"ResetDailyEarningsCommand must be created via NewResetDailyEarningsCommand constructor",
)

// ResetDailyEarningsCommand zeroes every agent's today-earnings counter.
// Fired by the midnight job; lifetime earnings and delivery counts are
// untouched.
type ResetDailyEarningsCommand struct {
	guard guard.ConstructorGuard
}

// NewResetDailyEarningsCommand creates a new command to reset daily earnings.
// This is a parameterless command that initiates the midnight rollover.
func NewResetDailyEarningsCommand() ResetDailyEarningsCommand {
	return ResetDailyEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ResetDailyEarningsCommand) Validate() error {
	return c.guard.Validate(
		ErrResetDailyEarningsCommandIsNotConstructed,
	)
}
