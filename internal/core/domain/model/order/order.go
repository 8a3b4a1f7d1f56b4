package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// ReturnWindow is how long after delivery a return may be initiated.
	ReturnWindow = 7 * 24 * time.Hour
)

var (
	// CODCeiling is the maximum order total payable as cash on delivery.
	CODCeiling = kernel.MustMoneyFromFloat(10000)

	// DefaultDeliveryFee is credited to the delivering agent when the order
	// carries no delivery charge of its own.
	DefaultDeliveryFee = kernel.MustMoneyFromFloat(50)
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCODCeilingExceeded is returned when a cash-on-delivery order's total
	// exceeds the COD ceiling.
	ErrCODCeilingExceeded = errs.NewValueIsInvalidError("cod orders cannot exceed the cod ceiling")

	// ErrOnlinePaymentNotSettled is returned when an online order is placed
	// without a confirmed payment.
	ErrOnlinePaymentNotSettled = errs.NewValueIsInvalidError("online orders require settled payment")
)

// Pricing is the monetary snapshot of an order, fixed at creation.
// TotalAmount must equal ItemsTotal + DeliveryCharge + Tax - Discount - CouponDiscount,
// and ItemsTotal must equal the sum of the line totals.
type Pricing struct {
	ItemsTotal     kernel.Money
	DeliveryCharge kernel.Money
	Tax            kernel.Money
	Discount       kernel.Money
	CouponDiscount kernel.Money
	TotalAmount    kernel.Money
}

// Order is the aggregate root for a customer order. It owns the fulfillment
// status machine, the append-only status history, the delivery-agent
// assignment with its OTP artifacts, and the cancellation record.
//
// Key invariants:
//   - Status follows the fulfillment chain; the only path to Delivered is
//     delivery OTP verification while OutForDelivery
//   - OutForDelivery always has an agent assigned
//   - The pricing snapshot is internally consistent and immutable
//   - The status history only ever grows, in insertion order
//   - Assignment and delivery OTPs are distinct artifacts that never share state
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing number, e.g. ORD-20260828-0042
	orderNumber string

	// customerID identifies the ordering customer
	customerID kernel.UUID

	// items are the order lines with their catalog snapshots
	items []*Item

	// pricing is the monetary snapshot fixed at creation
	pricing Pricing

	// paymentMethod and paymentStatus track settlement
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	// status is the current state in the fulfillment lifecycle
	status Status

	// history is the append-only status log
	history []HistoryEntry

	// agentID is the assigned delivery agent (nil if unassigned)
	agentID *kernel.UUID

	// assignmentOTP is the 6-digit code issued when an agent is assigned
	assignmentOTP *OTP

	// deliveryOTP is the 4-digit code gating the Delivered transition
	deliveryOTP *OTP

	// deliveredAt is set exactly once, by successful OTP verification
	deliveredAt *time.Time

	// cancellation records why, when and by whom the order was cancelled
	cancellation *Cancellation

	// createdAt is when the order was placed
	createdAt time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order with validation. This is the only way to
// place an order, ensuring all invariants hold from the start.
//
// Payment rules applied:
//   - COD orders must not exceed CODCeiling and start with payment pending
//   - Online orders require the gateway's settled signal (PaymentPaid)
//
// The order enters the system in Confirmed status with two seeded history
// entries: Pending ("Order placed") followed by Confirmed.
//
// Parameters:
//   - id: Unique identifier (must be valid UUID)
//   - orderNumber: Human-facing order number (required)
//   - customerID: Ordering customer (must be valid UUID)
//   - items: At least one order line
//   - pricing: Consistent monetary snapshot
//   - paymentMethod: COD or online
//   - paymentStatus: Settlement state at placement
//   - now: Placement time
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	items []*Item,
	pricing Pricing,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	now time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setPricing(pricing),
		o.setPayment(paymentMethod, paymentStatus),
	); err != nil {
		return nil, err
	}

	o.createdAt = now
	o.status = Confirmed
	o.history = []HistoryEntry{
		NewHistoryEntry(Pending, "Order placed", now),
		NewHistoryEntry(Confirmed, "Order confirmed", now),
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order for
// reconstruction by the repository layer.
type RestoreOrderParams struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	Items         []*Item
	Pricing       Pricing
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        Status
	History       []HistoryEntry
	AgentID       *kernel.UUID
	AssignmentOTP *OTP
	DeliveryOTP   *OTP
	DeliveredAt   *time.Time
	Cancellation  *Cancellation
	CreatedAt     time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it does not re-run placement-time payment rules or seed
// history; the restored order carries exactly the persisted state.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setOrderNumber(params.OrderNumber),
		o.setCustomerID(params.CustomerID),
		o.setItems(params.Items),
		params.Status.Validate(),
		params.PaymentMethod.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Status == OutForDelivery && params.AgentID == nil {
		return nil, errs.NewValueIsInvalidError("out_for_delivery order requires an assigned agent")
	}

	o.pricing = params.Pricing
	o.paymentMethod = params.PaymentMethod
	o.paymentStatus = params.PaymentStatus
	o.status = params.Status
	o.history = make([]HistoryEntry, len(params.History))
	copy(o.history, params.History)
	o.agentID = params.AgentID
	o.assignmentOTP = params.AssignmentOTP
	o.deliveryOTP = params.DeliveryOTP
	o.deliveredAt = params.DeliveredAt
	o.cancellation = params.Cancellation
	o.createdAt = params.CreatedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns the order lines. The returned slice is a copy to prevent
// external modification of the aggregate's state.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Item returns the order line with the given identifier.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItemId", itemID.String())
}

// Pricing returns the monetary snapshot fixed at creation.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement state of the payment.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// History returns the append-only status log in insertion order.
// The returned slice is a copy.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Agent returns the assigned delivery agent's ID, nil if unassigned.
func (o *Order) Agent() *kernel.UUID {
	return o.agentID
}

// AssignmentOTP returns the current assignment code, nil if none is active.
func (o *Order) AssignmentOTP() *OTP {
	return o.assignmentOTP
}

// DeliveryOTP returns the current delivery code, nil if none is active.
func (o *Order) DeliveryOTP() *OTP {
	return o.deliveryOTP
}

// DeliveredAt returns when the order was delivered, nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Cancellation returns the cancellation record, nil unless cancelled.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryFeeCredit returns the amount the delivering agent earns for this
// order: the order's delivery charge, or DefaultDeliveryFee when the order
// carries none.
func (o *Order) DeliveryFeeCredit() kernel.Money {
	if o.pricing.DeliveryCharge.IsZero() {
		return DefaultDeliveryFee
	}
	return o.pricing.DeliveryCharge
}

// TransitionTo advances the order along the fulfillment chain.
//
// Business rules:
//   - Forward-only; the chain never regresses through this method
//   - Delivered is rejected: OTP verification is the only path there
//   - OutForDelivery requires an assigned agent
//
// A history entry is appended with the given note, or a generated one when
// the note is empty.
func (o *Order) TransitionTo(target Status, note string, now time.Time) error {
	if target == OutForDelivery && o.agentID == nil {
		return errs.NewPreconditionFailedError("mark out for delivery without an assigned agent", o.status.String())
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus, note, now)
	return nil
}

// Cancel cancels the order and records who did it and why.
//
// Business rules:
//   - Delivered, Cancelled, Returned and Shipped orders cannot be cancelled
//   - Cancellation metadata is recorded exactly once
//
// Releasing reserved stock is the caller's concern; the aggregate does not
// reach into the inventory ledger.
func (o *Order) Cancel(reason, cancelledBy string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	c := NewCancellation(reason, cancelledBy, now)
	o.cancellation = &c
	o.appendHistory(newStatus, fmt.Sprintf("Order cancelled: %s", reason), now)
	return nil
}

// AssignAgent assigns a delivery agent to the order.
//
// Business rules:
//   - Terminal and delivered orders cannot be (re)assigned
//   - Reassignment replaces the previous agent; releasing that agent's
//     active-order slot is the caller's concern
//   - A fresh 6-digit assignment OTP is issued on every assignment
//   - An order earlier than Processing advances to Processing; the status
//     never regresses because of an assignment
func (o *Order) AssignAgent(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() || o.status == Delivered {
		return errs.NewPreconditionFailedError("assign delivery agent", o.status.String())
	}

	otp, err := NewOTP(AssignmentOTPDigits, now)
	if err != nil {
		return err
	}

	o.agentID = &agentID
	o.assignmentOTP = otp

	if o.status.IsBefore(Processing) {
		newStatus, transitionErr := o.status.TransitionTo(Processing)
		if transitionErr != nil {
			return transitionErr
		}
		o.status = newStatus
		o.appendHistory(newStatus, "Delivery agent assigned", now)
	} else {
		o.appendHistory(o.status, "Delivery agent assigned", now)
	}

	return nil
}

// UnassignAgent removes the assigned agent from the order.
//
// Business rules:
//   - The order must have an agent assigned
//   - Both OTP artifacts are cleared
//   - The status regresses to Confirmed only while the order is no further
//     along than Processing; later orders keep their status
func (o *Order) UnassignAgent(now time.Time) error {
	if o.agentID == nil {
		return errs.NewPreconditionFailedError("unassign delivery agent from unassigned order", o.status.String())
	}

	o.agentID = nil
	o.assignmentOTP = nil
	o.deliveryOTP = nil

	if o.status == Processing || o.status.IsBefore(Processing) {
		o.status = Confirmed
		o.appendHistory(Confirmed, "Delivery agent unassigned", now)
	} else {
		o.appendHistory(o.status, "Delivery agent unassigned", now)
	}

	return nil
}

// IssueDeliveryOTP issues a fresh 4-digit delivery code.
//
// Business rules:
//   - The order must be OutForDelivery
//   - Reissue during the previous code's cooldown is rate limited,
//     regardless of whether that code has since expired
//
// The issued OTP is returned so the caller can hand the code to the
// notification channel.
func (o *Order) IssueDeliveryOTP(now time.Time) (*OTP, error) {
	if o.status != OutForDelivery {
		return nil, errs.NewPreconditionFailedError("issue delivery otp", o.status.String())
	}

	if o.deliveryOTP != nil {
		if err := o.deliveryOTP.ValidateReissue(now); err != nil {
			return nil, err
		}
	}

	otp, err := NewOTP(DeliveryOTPDigits, now)
	if err != nil {
		return nil, err
	}

	o.deliveryOTP = otp
	return otp, nil
}

// VerifyDeliveryOTP checks the submitted delivery code and, on success,
// marks the order delivered.
//
// Business rules:
//   - The order must be OutForDelivery with an issued delivery code
//   - Expiry and exhausted attempts clear the code; a fresh one must be issued
//   - On success the order becomes Delivered exactly once, deliveredAt is
//     set, and both OTP artifacts are cleared
//
// Crediting the agent's earnings is the caller's concern.
func (o *Order) VerifyDeliveryOTP(code string, now time.Time) error {
	if o.status != OutForDelivery {
		return errs.NewPreconditionFailedError("verify delivery otp", o.status.String())
	}
	if o.deliveryOTP == nil {
		return errs.NewPreconditionFailedError("verify delivery otp before one is issued", o.status.String())
	}

	if err := o.deliveryOTP.Verify(code, now); err != nil {
		if errors.Is(err, ErrOTPExpired) || errors.Is(err, ErrOTPAttemptsExceeded) {
			o.deliveryOTP = nil
		}
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	deliveredAt := now
	o.deliveredAt = &deliveredAt
	o.deliveryOTP = nil
	o.assignmentOTP = nil
	o.appendHistory(newStatus, "Order delivered", now)
	return nil
}

// ValidateReturnable checks whether a return may be initiated at the given time.
//
// Business rules:
//   - Only delivered orders can be returned
//   - The return window is ReturnWindow after the delivery time
func (o *Order) ValidateReturnable(now time.Time) error {
	if o.status != Delivered || o.deliveredAt == nil {
		return errs.NewPreconditionFailedError("initiate return", o.status.String())
	}
	if now.After(o.deliveredAt.Add(ReturnWindow)) {
		return errs.NewPreconditionFailedError("initiate return after the return window", o.status.String())
	}
	return nil
}

// MarkReturned transitions a delivered order to Returned.
func (o *Order) MarkReturned(now time.Time) error {
	newStatus, err := o.status.Return()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus, "Order returned", now)
	return nil
}

// MarkItemReturn writes the denormalized return marker on an order line.
func (o *Order) MarkItemReturn(itemID kernel.UUID, returnStatus string) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	item.markReturn(returnStatus)
	return nil
}

// ClearItemReturn removes the denormalized return marker from an order line,
// for example when its return request is cancelled.
func (o *Order) ClearItemReturn(itemID kernel.UUID) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	item.clearReturn()
	return nil
}

// appendHistory adds a history line, generating a note when none is given.
func (o *Order) appendHistory(status Status, note string, at time.Time) {
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", status)
	}
	o.history = append(o.history, NewHistoryEntry(status, note, at))
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing order number.
func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

// setCustomerID validates and sets the ordering customer.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setItems validates and sets the order lines.
func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

// setPricing validates the pricing snapshot's internal consistency:
// the items total must match the line totals, and the grand total must
// match the arithmetic of its parts.
func (o *Order) setPricing(pricing Pricing) error {
	lineSum := kernel.ZeroMoney()
	for _, item := range o.items {
		lineSum = lineSum.Add(item.LineTotal())
	}
	if !pricing.ItemsTotal.IsEqual(lineSum) {
		return errs.NewValueIsInvalidErrorWithCause("items total",
			fmt.Errorf("%s does not match line totals %s", pricing.ItemsTotal, lineSum))
	}

	gross := pricing.ItemsTotal.Add(pricing.DeliveryCharge).Add(pricing.Tax)
	expected, err := gross.Sub(pricing.Discount)
	if err == nil {
		expected, err = expected.Sub(pricing.CouponDiscount)
	}
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("discounts", fmt.Errorf("discounts exceed gross total: %w", err))
	}
	if !pricing.TotalAmount.IsEqual(expected) {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%s does not match computed total %s", pricing.TotalAmount, expected))
	}

	o.pricing = pricing
	return nil
}

// setPayment validates the payment method and applies placement-time rules:
// the COD ceiling and the settled-payment requirement for online orders.
func (o *Order) setPayment(method PaymentMethod, status PaymentStatus) error {
	if err := method.Validate(); err != nil {
		return err
	}

	switch method {
	case PaymentMethodCOD:
		if o.pricing.TotalAmount.GreaterThan(CODCeiling) {
			return ErrCODCeilingExceeded
		}
		status = PaymentPending
	case PaymentMethodOnline:
		if status != PaymentPaid {
			return ErrOnlinePaymentNotSettled
		}
	default:
		return errs.NewValueIsInvalidError("payment method")
	}

	o.paymentMethod = method
	o.paymentStatus = status
	return nil
}
