package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// InitiateReturnCommandHandler handles filing a return request.
//
// Returnability (delivered, within the 7-day window) is checked against the
// order; the refund amount is snapshotted from the item's unit price. The
// request row and the denormalized marker on the order item commit
// together. The single-open-return rule surfaces from the repository as a
// conflict.
type InitiateReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewInitiateReturnCommandHandler creates a handler for filing returns.
func NewInitiateReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) InitiateReturnCommandHandler {
	return InitiateReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the return filing command.
func (h InitiateReturnCommandHandler) Handle(ctx context.Context, cmd InitiateReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("orderId", cmd.OrderID().String())
	}

	if err = o.ValidateReturnable(now); err != nil {
		return err
	}

	item, err := o.Item(cmd.OrderItemID())
	if err != nil {
		return err
	}

	if cmd.Quantity() > item.Quantity() {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d exceeds the ordered quantity %d", cmd.Quantity(), item.Quantity()))
	}

	var exchange *rma.Exchange
	if details := cmd.Exchange(); details != nil {
		ex, err := rma.NewExchange(details.ProductID, details.Size, details.Color)
		if err != nil {
			return err
		}
		exchange = &ex
	}

	request, err := rma.NewReturnRequest(
		cmd.ReturnID(), cmd.OrderID(), cmd.OrderItemID(), cmd.CustomerID(),
		cmd.Reason(), cmd.Description(), cmd.ReturnType(), cmd.Quantity(),
		item.UnitPrice(), cmd.RefundMethod(), exchange, now,
	)
	if err != nil {
		return err
	}

	if err = uow.ReturnRepository().Add(ctx, request); err != nil {
		return err
	}

	if err = o.MarkItemReturn(cmd.OrderItemID(), order.ReturnRequestedMarker); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.ReturnStatusChanged(ctx, request.CustomerID(), request.ID(), request.Status().String())
	return nil
}
