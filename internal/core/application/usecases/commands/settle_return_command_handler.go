package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// SettleReturnCommandHandler handles return settlement.
//
// Completing a refund or exchange restocks the returned quantity and, once
// every item of the order has settled, marks the whole order returned. The
// refund payout itself runs through the RefundExecutor after commit: the
// refund_initiated state is durable before any money moves.
type SettleReturnCommandHandler struct {
	uowFactory SettleReturnUoWFactory
	executor   ports.RefundExecutor
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewSettleReturnCommandHandler creates a handler for return settlement.
func NewSettleReturnCommandHandler(
	uowFactory SettleReturnUoWFactory,
	executor ports.RefundExecutor,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) SettleReturnCommandHandler {
	return SettleReturnCommandHandler{
		uowFactory: uowFactory,
		executor:   executor,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the settlement step command.
func (h SettleReturnCommandHandler) Handle(ctx context.Context, cmd SettleReturnCommand) error {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Action() {
	case SettleInitiateRefund:
		err = r.InitiateRefund(cmd.By(), now)
	case SettleInitiateExchange:
		err = r.InitiateExchange(cmd.By(), now)
	case SettleCompleteRefund:
		err = h.complete(ctx, uow, r, o, now, func() error { return r.CompleteRefund(cmd.By(), now) })
	case SettleCompleteExchange:
		err = h.complete(ctx, uow, r, o, now, func() error { return r.CompleteExchange(cmd.By(), now) })
	}
	if err != nil {
		return err
	}

	if err = o.MarkItemReturn(r.OrderItemID(), r.Status().String()); err != nil {
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

	if cmd.Action() == SettleInitiateRefund {
		if err = h.executor.Execute(ctx, r.CustomerID(), r.RefundMethod(), r.RefundAmount()); err != nil {
			return err
		}
	}

	h.notifier.ReturnStatusChanged(ctx, r.CustomerID(), r.ID(), r.Status().String())
	return nil
}

// complete applies a terminal settlement step: the request transition,
// the restock, and the order-level returned status once every item settled.
func (h SettleReturnCommandHandler) complete(
	ctx context.Context,
	uow SettleReturnUoW,
	r *rma.ReturnRequest,
	o *order.Order,
	now time.Time,
	transition func() error,
) error {
	if err := transition(); err != nil {
		return err
	}

	item, err := o.Item(r.OrderItemID())
	if err != nil {
		return err
	}

	if err = uow.ProductRepository().Release(ctx, item.ProductID(), r.Quantity()); err != nil {
		return err
	}

	if allItemsSettled(o, r) {
		if err = o.MarkReturned(now); err != nil {
			return err
		}
	}

	return nil
}

// allItemsSettled reports whether every item of the order has a settled
// return marker, counting the in-flight request as settled.
func allItemsSettled(o *order.Order, r *rma.ReturnRequest) bool {
	for _, item := range o.Items() {
		if item.ID().IsEqual(r.OrderItemID()) {
			continue
		}

		switch item.ReturnStatus() {
		case rma.StatusRefundCompleted.String(), rma.StatusExchangeDelivered.String():
		default:
			return false
		}
	}
	return true
}
