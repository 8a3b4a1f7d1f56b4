package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// TransitionStatusCommandHandler handles forward moves in the fulfillment
// chain. The order aggregate enforces which moves are legal; the handler
// only supplies locking, persistence and the post-commit notification.
type TransitionStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewTransitionStatusCommandHandler creates a handler for status transitions.
func NewTransitionStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) TransitionStatusCommandHandler {
	return TransitionStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the transition command.
func (h TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) error {
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

	if err = o.TransitionTo(cmd.Target(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
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
