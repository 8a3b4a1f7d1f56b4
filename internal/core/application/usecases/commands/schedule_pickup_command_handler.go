package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// SchedulePickupCommandHandler handles booking a return pickup.
type SchedulePickupCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewSchedulePickupCommandHandler creates a handler for pickup booking.
func NewSchedulePickupCommandHandler(
	uowFactory ReturnUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) SchedulePickupCommandHandler {
	return SchedulePickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the booking command.
func (h SchedulePickupCommandHandler) Handle(ctx context.Context, cmd SchedulePickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.ReturnID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	returnRepo := uow.ReturnRepository()

	r, err := returnRepo.Get(ctx, cmd.ReturnID())
	if err != nil {
		return err
	}

	if err = r.SchedulePickup(cmd.Date(), cmd.TimeSlot(), cmd.By(), time.Now().UTC()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.ReturnStatusChanged(ctx, r.CustomerID(), r.ID(), r.Status().String())
	return nil
}
