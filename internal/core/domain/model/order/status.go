package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ─> Confirmed ─> Processing ─> Packed ─> Shipped ─> OutForDelivery ─> Delivered ─> Returned
//	   │           │            │            │         │              │
//	   └───────────┴────────────┴────────────┘         x              │
//	              (cancellable)                  (not cancellable)    └─> Delivered only via OTP verification
//
// Cancelled, Returned and Failed are terminal side exits. Delivered can only
// be left through Return. The forward chain never regresses, with one
// exception: unassigning a delivery agent may roll an order back to Confirmed
// while it is no further along than Processing.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status recorded when an order is placed.
	Pending

	// Confirmed indicates payment checks passed and the order is accepted.
	// Orders enter the system in this status, with both Pending and
	// Confirmed entries seeded in the history.
	Confirmed

	// Processing indicates the order is being prepared for dispatch.
	// Assigning a delivery agent advances an earlier order to this status.
	Processing

	// Packed indicates all items are packed and awaiting handover.
	Packed

	// Shipped indicates the order left the warehouse.
	// Shipped orders can no longer be cancelled.
	Shipped

	// OutForDelivery indicates the assigned agent is en route to the customer.
	// Orders can only enter this status with an agent assigned, and the
	// delivery OTP protocol operates exclusively in this status.
	OutForDelivery

	// Delivered indicates the customer received the order. Reached only
	// through successful delivery OTP verification.
	Delivered

	// Cancelled is a terminal status for orders cancelled before shipping.
	Cancelled

	// Returned is a terminal status for orders returned after delivery.
	Returned

	// Failed is a terminal status for orders that could not be fulfilled.
	Failed
)

// getStatusStrings returns a map of Status values to their string representations.
// The strings double as the persisted wire format.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Processing:     "processing",
		Packed:         "packed",
		Shipped:        "shipped",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Returned:       "returned",
		Failed:         "failed",
	}
}

// getProgressRanks returns the position of each status on the forward
// fulfillment chain. Side-exit statuses are not on the chain.
func getProgressRanks() map[Status]int {
	//nolint:exhaustive // side-exit statuses are intentionally off the chain
	return map[Status]int{
		Pending:        1,
		Confirmed:      2,
		Processing:     3,
		Packed:         4,
		Shipped:        5,
		OutForDelivery: 6,
		Delivered:      7,
	}
}

// StatusFromString parses a Status from its persisted string form.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted string form of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions at all.
// Delivered is not terminal: it can still be left through Return.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Returned || s == Failed
}

// onProgressChain reports whether the status sits on the forward chain, and
// its position if so.
func (s Status) onProgressChain() (int, bool) {
	rank, ok := getProgressRanks()[s]
	return rank, ok
}

// IsBefore reports whether s precedes other on the forward chain.
// Returns false if either status is off the chain.
func (s Status) IsBefore(other Status) bool {
	a, okA := s.onProgressChain()
	b, okB := other.onProgressChain()
	return okA && okB && a < b
}

// CanCancel reports whether an order in this status may still be cancelled.
// Delivered, Cancelled, Returned and Shipped orders cannot be cancelled:
// once goods leave the warehouse the side exit closes.
func (s Status) CanCancel() bool {
	switch s {
	case Delivered, Cancelled, Returned, Shipped:
		return false
	default:
		return s != Unknown
	}
}

// TransitionTo validates a forward move along the fulfillment chain and
// returns the new status.
//
// Business rules:
//   - Both the current and the target status must be on the forward chain
//   - The move must be strictly forward; the chain never regresses
//   - Delivered cannot be entered this way: the only path to Delivered is
//     delivery OTP verification (see Deliver)
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, *errs.PreconditionFailedError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if target == Delivered {
		return 0, errs.NewPreconditionFailedError("transition to delivered without otp verification", s.String())
	}

	from, okFrom := s.onProgressChain()
	to, okTo := target.onProgressChain()
	if !okFrom || !okTo || to <= from {
		return 0, errs.NewPreconditionFailedError(
			fmt.Sprintf("transition to %s", target),
			s.String(),
		)
	}

	return target, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from any status where CanCancel holds. Shipped, Delivered, Cancelled
// and Returned orders reject cancellation.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return 0, errs.NewPreconditionFailedError("cancel order", s.String())
	}
	return Cancelled, nil
}

// Deliver transitions the status to Delivered.
//
// The only valid source is OutForDelivery; callers reach this through
// successful delivery OTP verification.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewPreconditionFailedError("deliver order", s.String())
	}
	return Delivered, nil
}

// Return transitions the status to Returned.
//
// Only delivered orders can be returned; the delivery-window check lives on
// the aggregate, which knows when delivery happened.
func (s Status) Return() (Status, error) {
	if s != Delivered {
		return 0, errs.NewPreconditionFailedError("return order", s.String())
	}
	return Returned, nil
}

// Fail transitions the status to Failed.
//
// Any non-terminal, non-delivered order can fail.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() || s == Delivered || s == Unknown {
		return 0, errs.NewPreconditionFailedError("fail order", s.String())
	}
	return Failed, nil
}
