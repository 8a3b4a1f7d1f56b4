package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// CancelReturnCommandHandler handles withdrawal of a return request. The
// aggregate rejects withdrawal once the items are collected.
type CancelReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewCancelReturnCommandHandler creates a handler for return withdrawal.
func NewCancelReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) CancelReturnCommandHandler {
	return CancelReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the withdrawal command.
func (h CancelReturnCommandHandler) Handle(ctx context.Context, cmd CancelReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlockOrder := h.locks.Lock(cmd.OrderID().String())
	defer unlockOrder()
	unlockReturn := h.locks.Lock(cmd.ReturnID().String())
	defer unlockReturn()

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

	if err = r.Cancel(cmd.By(), time.Now().UTC()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ClearItemReturn(r.OrderItemID()); err != nil {
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
