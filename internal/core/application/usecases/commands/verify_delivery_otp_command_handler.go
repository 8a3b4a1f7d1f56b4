package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// VerifyDeliveryOTPCommandHandler handles delivery confirmation attempts.
//
// Failed attempts still commit: the attempt counter (and any code clearing
// on expiry or exhaustion) must survive, otherwise retrying would reset the
// limit. On success the order becomes delivered and the assigned agent is
// credited the delivery fee in the same transaction.
type VerifyDeliveryOTPCommandHandler struct {
	uowFactory AssignmentUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewVerifyDeliveryOTPCommandHandler creates a handler for OTP verification.
func NewVerifyDeliveryOTPCommandHandler(
	uowFactory AssignmentUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) VerifyDeliveryOTPCommandHandler {
	return VerifyDeliveryOTPCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the confirmation attempt.
func (h VerifyDeliveryOTPCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryOTPCommand) error {
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

	verifyErr := o.VerifyDeliveryOTP(cmd.Code(), time.Now().UTC())

	if verifyErr == nil {
		agentID := o.Agent()

		agentRepo := uow.AgentRepository()
		a, err := agentRepo.Get(ctx, *agentID)
		if err != nil {
			return err
		}

		if err = a.CompleteDelivery(o.ID(), o.DeliveryFeeCredit()); err != nil {
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

	if verifyErr != nil {
		return verifyErr
	}

	h.notifier.OrderStatusChanged(ctx, o.CustomerID(), o.OrderNumber(), o.Status().String())
	return nil
}
