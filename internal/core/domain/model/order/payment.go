package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCOD is cash on delivery. Subject to the COD ceiling.
	PaymentMethodCOD

	// PaymentMethodOnline is an online payment settled through the gateway
	// before the order is accepted.
	PaymentMethodOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		PaymentMethodCOD:     "cod",
		PaymentMethodOnline:  "online",
	}
}

// PaymentMethodFromString parses a PaymentMethod from its persisted string form.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == s && m != PaymentMethodUnknown {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != PaymentMethodCOD && m != PaymentMethodOnline {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the persisted string form of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus is the settlement state of an order's payment.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means payment is still outstanding. COD orders stay
	// pending until delivery.
	PaymentPending

	// PaymentPaid means the gateway confirmed settlement.
	PaymentPaid

	// PaymentRefunded means the amount was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentRefunded:      "refunded",
	}
}

// PaymentStatusFromString parses a PaymentStatus from its persisted string form.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for p, str := range getPaymentStatusStrings() {
		if str == s && p != PaymentStatusUnknown {
			return p, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentPaid && p != PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the persisted string form of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
