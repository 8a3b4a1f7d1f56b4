package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// UnassignDeliveryCommandHandler handles taking an order away from its
// agent. Order and agent change together in one transaction.
type UnassignDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	assigner   services.DeliveryAssigner
	locks      *locker.KeyedMutex
}

// NewUnassignDeliveryCommandHandler creates a handler for unassignment.
func NewUnassignDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	locks *locker.KeyedMutex,
) UnassignDeliveryCommandHandler {
	return UnassignDeliveryCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewDeliveryAssigner(),
		locks:      locks,
	}
}

// Handle processes the unassignment command.
func (h UnassignDeliveryCommandHandler) Handle(ctx context.Context, cmd UnassignDeliveryCommand) error {
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
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	agentID := o.Agent()
	if agentID == nil {
		return errs.NewPreconditionFailedError("unassign order without an agent", o.Status().String())
	}

	a, err := agentRepo.Get(ctx, *agentID)
	if err != nil {
		return err
	}

	if err = h.assigner.Unassign(o, a, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
