package rma

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a return request.
// It implements a state machine covering the full pipeline from the
// customer's request through pickup, warehouse inspection and settlement.
//
// State transitions:
//
//	Pending ──┬─> Approved ─> PickupScheduled ─> PickupCompleted ─> InTransitToWarehouse ─> ReceivedAtWarehouse
//	          │       │              │                                                             │
//	          │       └──────────────┴─> Cancelled                              ┌──────────────────┴─────┐
//	          ├─> Rejected                                                      v                        v
//	          └─> Cancelled                                            QualityCheckPassed       QualityCheckFailed
//	                                                                      │           │
//	                                                                      v           v
//	                                                              RefundInitiated  ExchangeInitiated
//	                                                                      │           │
//	                                                                      v           v
//	                                                              RefundCompleted  ExchangeDelivered
//
// Rejected, Cancelled, QualityCheckFailed, RefundCompleted and
// ExchangeDelivered are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status when the customer files the request.
	StatusPending

	// StatusApproved means an admin accepted the request.
	StatusApproved

	// StatusRejected means an admin declined the request. Terminal.
	StatusRejected

	// StatusPickupScheduled means a pickup date and slot are booked.
	StatusPickupScheduled

	// StatusPickupCompleted means the items were collected from the customer.
	StatusPickupCompleted

	// StatusInTransitToWarehouse means the items are on their way back.
	StatusInTransitToWarehouse

	// StatusReceivedAtWarehouse means the warehouse took custody.
	StatusReceivedAtWarehouse

	// StatusQualityCheckPassed means inspection cleared the items for settlement.
	StatusQualityCheckPassed

	// StatusQualityCheckFailed means inspection rejected the items. Terminal.
	StatusQualityCheckFailed

	// StatusRefundInitiated means the refund was handed to the payment side.
	StatusRefundInitiated

	// StatusRefundCompleted means the customer received the money. Terminal.
	StatusRefundCompleted

	// StatusExchangeInitiated means the replacement item was dispatched for fulfillment.
	StatusExchangeInitiated

	// StatusExchangeDelivered means the customer received the replacement. Terminal.
	StatusExchangeDelivered

	// StatusCancelled means the customer withdrew the request. Terminal.
	// Only reachable from Pending, Approved and PickupScheduled.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:              "unknown",
		StatusPending:              "pending",
		StatusApproved:             "approved",
		StatusRejected:             "rejected",
		StatusPickupScheduled:      "pickup_scheduled",
		StatusPickupCompleted:      "pickup_completed",
		StatusInTransitToWarehouse: "in_transit_to_warehouse",
		StatusReceivedAtWarehouse:  "received_at_warehouse",
		StatusQualityCheckPassed:   "quality_check_passed",
		StatusQualityCheckFailed:   "quality_check_failed",
		StatusRefundInitiated:      "refund_initiated",
		StatusRefundCompleted:      "refund_completed",
		StatusExchangeInitiated:    "exchange_initiated",
		StatusExchangeDelivered:    "exchange_delivered",
		StatusCancelled:            "cancelled",
	}
}

// getTransitions returns the allowed moves of the state machine.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		StatusPending:              {StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved:             {StatusPickupScheduled, StatusCancelled},
		StatusPickupScheduled:      {StatusPickupCompleted, StatusCancelled},
		StatusPickupCompleted:      {StatusInTransitToWarehouse},
		StatusInTransitToWarehouse: {StatusReceivedAtWarehouse},
		StatusReceivedAtWarehouse:  {StatusQualityCheckPassed, StatusQualityCheckFailed},
		StatusQualityCheckPassed:   {StatusRefundInitiated, StatusExchangeInitiated},
		StatusRefundInitiated:      {StatusRefundCompleted},
		StatusExchangeInitiated:    {StatusExchangeDelivered},
	}
}

// StatusFromString parses a Status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("return status", fmt.Errorf("%q is not a valid return status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("return status", fmt.Errorf("%d is not a valid return status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("return status", fmt.Errorf("%d is not a valid return status", s))
	}
	return nil
}

// String returns the persisted string form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusQualityCheckFailed,
		StatusRefundCompleted, StatusExchangeDelivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates a move of the state machine and returns the new status.
//
// Returns:
//   - (target, nil) on an allowed transition
//   - (0, *errs.PreconditionFailedError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewPreconditionFailedError(
			fmt.Sprintf("move return to %s", target),
			s.String(),
		)
	}
	return target, nil
}
