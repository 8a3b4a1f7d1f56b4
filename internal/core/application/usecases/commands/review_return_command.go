package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReviewReturnCommandIsNotConstructed = errors.New(
	"ReviewReturnCommand must be created via NewReviewReturnCommand constructor",
)

// ReviewReturnCommand represents an admin decision on a pending return:
// approve it, or reject it with a stated reason.
type ReviewReturnCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	returnID        kernel.UUID
	approve         bool
	rejectionReason string
	reviewedBy      string

	guard guard.ConstructorGuard
}

// NewReviewReturnCommand creates a command to review a return request.
// Rejection requires a reason.
func NewReviewReturnCommand(
	orderID, returnID kernel.UUID,
	approve bool,
	rejectionReason, reviewedBy string,
) (ReviewReturnCommand, error) {
	cmd := ReviewReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		returnID.Validate(),
	); err != nil {
		return ReviewReturnCommand{}, err
	}

	if reviewedBy == "" {
		return ReviewReturnCommand{}, errs.NewValueIsRequiredError("reviewedBy")
	}
	if !approve && rejectionReason == "" {
		return ReviewReturnCommand{}, errs.NewValueIsRequiredError("rejectionReason")
	}

	cmd.orderID = orderID
	cmd.returnID = returnID
	cmd.approve = approve
	cmd.rejectionReason = rejectionReason
	cmd.reviewedBy = reviewedBy

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewReturnCommand) Validate() error {
	return c.guard.Validate(ErrReviewReturnCommandIsNotConstructed)
}

// OrderID returns the order the return was filed against.
func (c ReviewReturnCommand) OrderID() kernel.UUID { return c.orderID }

// ReturnID returns the request under review.
func (c ReviewReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// Approve reports whether the decision is an approval.
func (c ReviewReturnCommand) Approve() bool { return c.approve }

// RejectionReason returns why the request is rejected, when it is.
func (c ReviewReturnCommand) RejectionReason() string { return c.rejectionReason }

// ReviewedBy returns the deciding admin.
func (c ReviewReturnCommand) ReviewedBy() string { return c.reviewedBy }
