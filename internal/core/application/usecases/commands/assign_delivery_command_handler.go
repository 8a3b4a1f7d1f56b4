package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// AssignDeliveryCommandHandler handles delivery assignment.
//
// Order, new agent and (on reassignment) previous agent change in one
// transaction, coordinated by the DeliveryAssigner domain service. The
// fresh assignment OTP goes to the agent after commit.
type AssignDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	assigner   services.DeliveryAssigner
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewDeliveryAssigner(),
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the assignment command.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
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

	newAgent, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	var previous *agent.Agent
	if prevID := o.Agent(); prevID != nil {
		if previous, err = agentRepo.Get(ctx, *prevID); err != nil {
			return err
		}
	}

	if err = h.assigner.Assign(o, newAgent, previous, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, newAgent); err != nil {
		return err
	}

	if previous != nil {
		if err = agentRepo.Update(ctx, previous); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if otp := o.AssignmentOTP(); otp != nil {
		h.notifier.AssignmentOTPIssued(ctx, newAgent.ID(), o.OrderNumber(), otp.Code())
	}
	return nil
}
