package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// RecordQualityCheckCommandHandler handles the warehouse inspection verdict.
// The denormalized marker on the order item follows the verdict; a failed
// check clears it since the items go back to the customer.
type RecordQualityCheckCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewRecordQualityCheckCommandHandler creates a handler for inspection verdicts.
func NewRecordQualityCheckCommandHandler(
	uowFactory ReturnUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) RecordQualityCheckCommandHandler {
	return RecordQualityCheckCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the inspection verdict command.
func (h RecordQualityCheckCommandHandler) Handle(ctx context.Context, cmd RecordQualityCheckCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlockOrder := h.locks.Lock(cmd.OrderID().String())
	defer unlockOrder()
	unlockReturn := h.locks.Lock(cmd.ReturnID().String())
	defer unlockReturn()

	now := time.Now().UTC()

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
	if !r.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("returnId", cmd.ReturnID().String())
	}

	if err = r.RecordQualityCheck(cmd.Passed(), cmd.Notes(), cmd.By(), now); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Passed() {
		err = o.MarkItemReturn(r.OrderItemID(), r.Status().String())
	} else {
		err = o.ClearItemReturn(r.OrderItemID())
	}
	if err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.ReturnStatusChanged(ctx, r.CustomerID(), r.ID(), r.Status().String())
	return nil
}
