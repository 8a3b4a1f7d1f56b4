package rma

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// PickupWindow is how far ahead a return pickup may be scheduled.
	PickupWindow = 7 * 24 * time.Hour

	// RefundEstimateLead is the promised refund horizon communicated to the
	// customer when the request is approved.
	RefundEstimateLead = 7 * 24 * time.Hour
)

// RestockingFeeRate is withheld from every refund: the customer gets back
// 90% of what they paid for the returned quantity.
var RestockingFeeRate = decimal.NewFromFloat(0.10)

var (
	// ErrReturnIsNotConstructed is returned when a ReturnRequest was not created
	// through the NewReturnRequest or RestoreReturnRequest factory methods.
	ErrReturnIsNotConstructed = errors.New("ReturnRequest must be created via NewReturnRequest constructor")

	// ErrExchangeDetailsRequired is returned when an exchange request carries
	// no replacement item details.
	ErrExchangeDetailsRequired = errs.NewValueIsRequiredError("exchange details")
)

// AdminNote is one line of the request's audit trail. Notes are append-only
// and recorded on every transition.
type AdminNote struct {
	note string
	by   string
	at   time.Time
}

// NewAdminNote creates an audit line.
func NewAdminNote(note, by string, at time.Time) AdminNote {
	return AdminNote{note: note, by: by, at: at}
}

// Note returns the text of the audit line.
func (n AdminNote) Note() string { return n.note }

// By returns who recorded the line.
func (n AdminNote) By() string { return n.by }

// At returns when the line was recorded.
func (n AdminNote) At() time.Time { return n.at }

// Pickup is the booked collection of the returned items.
type Pickup struct {
	date     time.Time
	timeSlot string
	agentID  *kernel.UUID
}

// Date returns the booked pickup date.
func (p Pickup) Date() time.Time { return p.date }

// TimeSlot returns the booked slot, e.g. "10:00-13:00".
func (p Pickup) TimeSlot() string { return p.timeSlot }

// AgentID returns the agent collecting the items, nil until one is assigned.
func (p Pickup) AgentID() *kernel.UUID { return p.agentID }

// RestorePickup reconstructs a pickup booking from persistent storage.
func RestorePickup(date time.Time, timeSlot string, agentID *kernel.UUID) Pickup {
	return Pickup{date: date, timeSlot: timeSlot, agentID: agentID}
}

// Exchange carries the replacement item for an exchange-type return.
type Exchange struct {
	productID kernel.UUID
	size      string
	color     string
}

// NewExchange creates replacement item details.
func NewExchange(productID kernel.UUID, size, color string) (Exchange, error) {
	if err := productID.Validate(); err != nil {
		return Exchange{}, err
	}
	return Exchange{productID: productID, size: size, color: color}, nil
}

// ProductID returns the replacement product.
func (e Exchange) ProductID() kernel.UUID { return e.productID }

// Size returns the requested size variant, if any.
func (e Exchange) Size() string { return e.size }

// Color returns the requested color variant, if any.
func (e Exchange) Color() string { return e.color }

// ReturnRequest is the aggregate root for one order item's return. It owns
// the return state machine, the pickup booking, the inspection outcome, the
// settlement (refund or exchange) and the append-only admin audit trail.
//
// Key invariants:
//   - At most one non-terminal request exists per (order, order item); the
//     persistence layer enforces this with a partial unique index
//   - The refund amount is fixed at filing time: 90% of unit price times quantity
//   - The estimated refund date is promised on approval, not before
//   - Cancellation is only possible from Pending, Approved and PickupScheduled
//   - The admin notes log only ever grows, in insertion order
type ReturnRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderItemID kernel.UUID
	customerID  kernel.UUID

	reason      Reason
	description string
	returnType  Type
	quantity    int

	status Status

	refundAmount        kernel.Money
	refundMethod        RefundMethod
	estimatedRefundDate time.Time
	refundedAt          *time.Time

	pickup   *Pickup
	exchange *Exchange

	rejectionReason   string
	qualityCheckNotes string

	adminNotes []AdminNote

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewReturnRequest files a return for one order item. This is the only way
// to create a valid request.
//
// The refund amount is computed here and never changes: unit price times
// quantity, minus the restocking fee. The estimated refund date is only
// stamped on approval. Exchange requests must carry replacement item
// details.
//
// Whether the order item is actually returnable (delivered, within the
// return window) is checked against the Order aggregate by the caller; this
// constructor only enforces the request's own invariants.
func NewReturnRequest(
	id, orderID, orderItemID, customerID kernel.UUID,
	reason Reason,
	description string,
	returnType Type,
	quantity int,
	unitPrice kernel.Money,
	refundMethod RefundMethod,
	exchange *Exchange,
	now time.Time,
) (*ReturnRequest, error) {
	r := &ReturnRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setOrderItemID(orderItemID),
		r.setCustomerID(customerID),
		reason.Validate(),
		returnType.Validate(),
		refundMethod.Validate(),
		r.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	if returnType == TypeExchange && exchange == nil {
		return nil, ErrExchangeDetailsRequired
	}

	keepRate := decimal.NewFromInt(1).Sub(RestockingFeeRate)
	refund, err := unitPrice.MulInt(quantity).Mul(keepRate)
	if err != nil {
		return nil, err
	}

	r.reason = reason
	r.description = description
	r.returnType = returnType
	r.refundAmount = refund
	r.refundMethod = refundMethod
	r.exchange = exchange
	r.status = StatusPending
	r.createdAt = now
	r.appendNote("Return request filed", "customer", now)

	return r, nil
}

// RestoreReturnRequestParams carries the full persisted state of a return
// request for reconstruction by the repository layer.
type RestoreReturnRequestParams struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	OrderItemID         kernel.UUID
	CustomerID          kernel.UUID
	Reason              Reason
	Description         string
	ReturnType          Type
	Quantity            int
	Status              Status
	RefundAmount        kernel.Money
	RefundMethod        RefundMethod
	EstimatedRefundDate time.Time
	RefundedAt          *time.Time
	Pickup              *Pickup
	Exchange            *Exchange
	RejectionReason     string
	QualityCheckNotes   string
	AdminNotes          []AdminNote
	CreatedAt           time.Time
}

// RestoreReturnRequest reconstructs a ReturnRequest aggregate from
// persistent storage.
func RestoreReturnRequest(params RestoreReturnRequestParams) (*ReturnRequest, error) {
	r := &ReturnRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(params.ID),
		r.setOrderID(params.OrderID),
		r.setOrderItemID(params.OrderItemID),
		r.setCustomerID(params.CustomerID),
		params.Reason.Validate(),
		params.ReturnType.Validate(),
		params.RefundMethod.Validate(),
		params.Status.Validate(),
		r.setQuantity(params.Quantity),
	); err != nil {
		return nil, err
	}

	r.reason = params.Reason
	r.description = params.Description
	r.returnType = params.ReturnType
	r.status = params.Status
	r.refundAmount = params.RefundAmount
	r.refundMethod = params.RefundMethod
	r.estimatedRefundDate = params.EstimatedRefundDate
	r.refundedAt = params.RefundedAt
	r.pickup = params.Pickup
	r.exchange = params.Exchange
	r.rejectionReason = params.RejectionReason
	r.qualityCheckNotes = params.QualityCheckNotes
	r.adminNotes = make([]AdminNote, len(params.AdminNotes))
	copy(r.adminNotes, params.AdminNotes)
	r.createdAt = params.CreatedAt

	return r, nil
}

// Validate ensures the ReturnRequest instance was properly constructed.
func (r *ReturnRequest) Validate() error {
	if r == nil {
		return ErrReturnIsNotConstructed
	}
	return r.guard.Validate(ErrReturnIsNotConstructed)
}

// IsEqual compares two requests by their unique identifiers.
func (r *ReturnRequest) IsEqual(other *ReturnRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *ReturnRequest) ID() kernel.UUID { return r.id }

// OrderID returns the order the return belongs to.
func (r *ReturnRequest) OrderID() kernel.UUID { return r.orderID }

// OrderItemID returns the order line being returned.
func (r *ReturnRequest) OrderItemID() kernel.UUID { return r.orderItemID }

// CustomerID returns the requesting customer.
func (r *ReturnRequest) CustomerID() kernel.UUID { return r.customerID }

// Reason returns the customer's stated cause.
func (r *ReturnRequest) Reason() Reason { return r.reason }

// Description returns the customer's free-form detail.
func (r *ReturnRequest) Description() string { return r.description }

// ReturnType returns how the request settles: refund or exchange.
func (r *ReturnRequest) ReturnType() Type { return r.returnType }

// Quantity returns how many units are being returned.
func (r *ReturnRequest) Quantity() int { return r.quantity }

// Status returns the current state of the request.
func (r *ReturnRequest) Status() Status { return r.status }

// RefundAmount returns the amount fixed at filing time.
func (r *ReturnRequest) RefundAmount() kernel.Money { return r.refundAmount }

// RefundMethod returns the channel a refund pays through.
func (r *ReturnRequest) RefundMethod() RefundMethod { return r.refundMethod }

// EstimatedRefundDate returns the horizon promised at approval, or the zero
// time while the request is still pending.
func (r *ReturnRequest) EstimatedRefundDate() time.Time { return r.estimatedRefundDate }

// RefundedAt returns when the refund completed, nil before then.
func (r *ReturnRequest) RefundedAt() *time.Time { return r.refundedAt }

// Pickup returns the booked collection, nil before scheduling.
func (r *ReturnRequest) Pickup() *Pickup { return r.pickup }

// Exchange returns the replacement item details for exchange requests.
func (r *ReturnRequest) Exchange() *Exchange { return r.exchange }

// RejectionReason returns why the request was rejected, if it was.
func (r *ReturnRequest) RejectionReason() string { return r.rejectionReason }

// QualityCheckNotes returns the inspection notes, if recorded.
func (r *ReturnRequest) QualityCheckNotes() string { return r.qualityCheckNotes }

// AdminNotes returns the append-only audit trail in insertion order.
// The returned slice is a copy.
func (r *ReturnRequest) AdminNotes() []AdminNote {
	out := make([]AdminNote, len(r.adminNotes))
	copy(out, r.adminNotes)
	return out
}

// CreatedAt returns when the request was filed.
func (r *ReturnRequest) CreatedAt() time.Time { return r.createdAt }

// Approve accepts a pending request and promises the customer a refund
// horizon of RefundEstimateLead from the approval.
func (r *ReturnRequest) Approve(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusApproved)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.estimatedRefundDate = now.Add(RefundEstimateLead)
	r.appendNote("Return approved", by, now)
	return nil
}

// Reject declines a pending request with a stated reason.
func (r *ReturnRequest) Reject(reason, by string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	newStatus, err := r.status.TransitionTo(StatusRejected)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.rejectionReason = reason
	r.appendNote(fmt.Sprintf("Return rejected: %s", reason), by, now)
	return nil
}

// SchedulePickup books the collection of the returned items.
//
// Business rules:
//   - The request must be Approved
//   - The pickup date must lie within [now, now + PickupWindow]
func (r *ReturnRequest) SchedulePickup(date time.Time, timeSlot string, by string, now time.Time) error {
	if timeSlot == "" {
		return errs.NewValueIsRequiredError("pickup time slot")
	}
	if date.Before(now) || date.After(now.Add(PickupWindow)) {
		return errs.NewValueIsInvalidErrorWithCause("pickup date",
			fmt.Errorf("%s is not within the next %d days", date.Format(time.DateOnly), int(PickupWindow.Hours()/24)))
	}

	newStatus, err := r.status.TransitionTo(StatusPickupScheduled)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.pickup = &Pickup{date: date, timeSlot: timeSlot}
	r.appendNote(fmt.Sprintf("Pickup scheduled for %s (%s)", date.Format(time.DateOnly), timeSlot), by, now)
	return nil
}

// AssignPickupAgent puts an agent on the booked pickup.
// Eligibility of the agent is the caller's concern.
func (r *ReturnRequest) AssignPickupAgent(agentID kernel.UUID, by string, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if r.status != StatusPickupScheduled || r.pickup == nil {
		return errs.NewPreconditionFailedError("assign pickup agent", r.status.String())
	}

	r.pickup.agentID = &agentID
	r.appendNote("Pickup agent assigned", by, now)
	return nil
}

// CompletePickup records that the items were collected from the customer.
func (r *ReturnRequest) CompletePickup(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusPickupCompleted)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("Pickup completed", by, now)
	return nil
}

// MarkInTransit records that the items are on their way to the warehouse.
func (r *ReturnRequest) MarkInTransit(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusInTransitToWarehouse)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("In transit to warehouse", by, now)
	return nil
}

// ReceiveAtWarehouse records warehouse custody of the items.
func (r *ReturnRequest) ReceiveAtWarehouse(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusReceivedAtWarehouse)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("Received at warehouse", by, now)
	return nil
}

// RecordQualityCheck records the inspection outcome.
// A failed check is terminal: the items go back to the customer and no
// settlement happens.
func (r *ReturnRequest) RecordQualityCheck(passed bool, notes, by string, now time.Time) error {
	target := StatusQualityCheckPassed
	if !passed {
		target = StatusQualityCheckFailed
	}

	newStatus, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.qualityCheckNotes = notes
	r.appendNote(fmt.Sprintf("Quality check %s", newStatus), by, now)
	return nil
}

// InitiateRefund hands the refund to the payment side.
//
// Business rules:
//   - Inspection must have passed
//   - Only refund-type requests settle with money back
func (r *ReturnRequest) InitiateRefund(by string, now time.Time) error {
	if r.returnType != TypeRefund {
		return errs.NewPreconditionFailedError("initiate refund for exchange request", r.status.String())
	}

	newStatus, err := r.status.TransitionTo(StatusRefundInitiated)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote(fmt.Sprintf("Refund of %s initiated via %s", r.refundAmount, r.refundMethod), by, now)
	return nil
}

// CompleteRefund records that the customer received the money.
func (r *ReturnRequest) CompleteRefund(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusRefundCompleted)
	if err != nil {
		return err
	}

	r.status = newStatus
	refundedAt := now
	r.refundedAt = &refundedAt
	r.appendNote("Refund completed", by, now)
	return nil
}

// InitiateExchange dispatches the replacement item.
//
// Business rules:
//   - Inspection must have passed
//   - Only exchange-type requests settle with a replacement
func (r *ReturnRequest) InitiateExchange(by string, now time.Time) error {
	if r.returnType != TypeExchange {
		return errs.NewPreconditionFailedError("initiate exchange for refund request", r.status.String())
	}

	newStatus, err := r.status.TransitionTo(StatusExchangeInitiated)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("Exchange initiated", by, now)
	return nil
}

// CompleteExchange records delivery of the replacement item.
func (r *ReturnRequest) CompleteExchange(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusExchangeDelivered)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("Exchange delivered", by, now)
	return nil
}

// Cancel withdraws the request.
//
// Only Pending, Approved and PickupScheduled requests can be cancelled;
// once the items are collected the pipeline runs to a settlement.
func (r *ReturnRequest) Cancel(by string, now time.Time) error {
	newStatus, err := r.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	r.status = newStatus
	r.appendNote("Return cancelled", by, now)
	return nil
}

// appendNote adds an audit line.
func (r *ReturnRequest) appendNote(note, by string, at time.Time) {
	r.adminNotes = append(r.adminNotes, NewAdminNote(note, by, at))
}

func (r *ReturnRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ReturnRequest) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *ReturnRequest) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}
	r.orderItemID = orderItemID
	return nil
}

func (r *ReturnRequest) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	r.customerID = customerID
	return nil
}

func (r *ReturnRequest) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	r.quantity = quantity
	return nil
}
