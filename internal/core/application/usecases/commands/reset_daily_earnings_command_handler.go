package commands

import (
	"context"
)

// ResetDailyEarningsCommandHandler handles the midnight earnings rollover.
// The reset is a single bulk update in the repository, so no per-agent
// locking is involved.
type ResetDailyEarningsCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewResetDailyEarningsCommandHandler creates a handler for the daily reset.
func NewResetDailyEarningsCommandHandler(uowFactory AgentUoWFactory) ResetDailyEarningsCommandHandler {
	return ResetDailyEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset command.
func (h ResetDailyEarningsCommandHandler) Handle(ctx context.Context, cmd ResetDailyEarningsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AgentRepository().ResetAllTodayEarnings(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
