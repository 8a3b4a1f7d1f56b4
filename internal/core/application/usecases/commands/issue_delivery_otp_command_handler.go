package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/locker"
)

// IssueDeliveryOTPCommandHandler handles delivery OTP issuance. The code is
// persisted with the order and sent to the customer after commit; it is
// never returned to the caller.
type IssueDeliveryOTPCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewIssueDeliveryOTPCommandHandler creates a handler for OTP issuance.
func NewIssueDeliveryOTPCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) IssueDeliveryOTPCommandHandler {
	return IssueDeliveryOTPCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the issuance command.
func (h IssueDeliveryOTPCommandHandler) Handle(ctx context.Context, cmd IssueDeliveryOTPCommand) error {
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

	otp, err := o.IssueDeliveryOTP(time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.DeliveryOTPIssued(ctx, o.CustomerID(), o.OrderNumber(), otp.Code())
	return nil
}
