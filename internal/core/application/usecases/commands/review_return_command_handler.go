package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// ReviewReturnCommandHandler handles the admin decision on a return.
// Approval updates the denormalized marker on the order item; rejection
// clears it. Locks are taken order first, then return.
type ReviewReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	locks      *locker.KeyedMutex
}

// NewReviewReturnCommandHandler creates a handler for return review.
func NewReviewReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	notifier ports.Notifier,
	locks *locker.KeyedMutex,
) ReviewReturnCommandHandler {
	return ReviewReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle processes the review command.
func (h ReviewReturnCommandHandler) Handle(ctx context.Context, cmd ReviewReturnCommand) error {
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

	if cmd.Approve() {
		if err = r.Approve(cmd.ReviewedBy(), now); err != nil {
			return err
		}
		if err = o.MarkItemReturn(r.OrderItemID(), rma.StatusApproved.String()); err != nil {
			return err
		}
	} else {
		if err = r.Reject(cmd.RejectionReason(), cmd.ReviewedBy(), now); err != nil {
			return err
		}
		if err = o.ClearItemReturn(r.OrderItemID()); err != nil {
			return err
		}
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
