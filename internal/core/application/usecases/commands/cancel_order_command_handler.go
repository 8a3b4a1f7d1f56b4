package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// CancelOrderCommandHandler handles order cancellation.
//
// One transaction covers the status change, the per-line stock release and
// the agent slot release. The customer notification goes out after commit.
type CancelOrderCommandHandler struct {
	uowFactory CancelOrderUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory CancelOrderUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

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

	if err = o.Cancel(cmd.Reason(), cmd.CancelledBy(), time.Now().UTC()); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, item := range o.Items() {
		if err = productRepo.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
			return err
		}
	}

	if agentID := o.Agent(); agentID != nil {
		agentRepo := uow.AgentRepository()

		a, err := agentRepo.Get(ctx, *agentID)
		if err != nil {
			return err
		}

		if err = a.ReleaseOrder(o.ID()); err != nil {
			return err
		}

		if err = agentRepo.Update(ctx, a); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(ctx, o.CustomerID(), o.OrderNumber(), o.Status().String())
	return nil
}
