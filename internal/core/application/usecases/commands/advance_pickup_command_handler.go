package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// AdvancePickupCommandHandler handles the pickup leg of a return. Assigning
// the collecting agent checks the agent is active and approved; pickups do
// not count against the agent's delivery capacity.
type AdvancePickupCommandHandler struct {
	uowFactory PickupUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewAdvancePickupCommandHandler creates a handler for pickup steps.
func NewAdvancePickupCommandHandler(
	uowFactory PickupUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) AdvancePickupCommandHandler {
	return AdvancePickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the pickup step command.
func (h AdvancePickupCommandHandler) Handle(ctx context.Context, cmd AdvancePickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.ReturnID().String())
	defer unlock()

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

	switch cmd.Action() {
	case PickupAssignAgent:
		a, err := uow.AgentRepository().Get(ctx, *cmd.AgentID())
		if err != nil {
			return err
		}
		if !a.IsActive() || !a.IsApproved() {
			return agent.ErrAgentNotEligible
		}
		if err = r.AssignPickupAgent(a.ID(), cmd.By(), now); err != nil {
			return err
		}
	case PickupCompleted:
		if err = r.CompletePickup(cmd.By(), now); err != nil {
			return err
		}
	case PickupInTransit:
		if err = r.MarkInTransit(cmd.By(), now); err != nil {
			return err
		}
	case PickupReceived:
		if err = r.ReceiveAtWarehouse(cmd.By(), now); err != nil {
			return err
		}
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
