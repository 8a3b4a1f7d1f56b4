package rma

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Reason is the customer's stated cause for a return. The set is closed;
// free-form detail goes in the request's description.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonDefective
	ReasonDamagedInTransit
	ReasonWrongItemDelivered
	ReasonWrongSize
	ReasonQualityIssue
	ReasonNotAsDescribed
	ReasonMissingParts
	ReasonExpiredProduct
	ReasonChangedMind
	ReasonBetterPriceAvailable
	ReasonOther
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonUnknown:              "unknown",
		ReasonDefective:            "defective",
		ReasonDamagedInTransit:     "damaged_in_transit",
		ReasonWrongItemDelivered:   "wrong_item_delivered",
		ReasonWrongSize:            "wrong_size",
		ReasonQualityIssue:         "quality_issue",
		ReasonNotAsDescribed:       "not_as_described",
		ReasonMissingParts:         "missing_parts",
		ReasonExpiredProduct:       "expired_product",
		ReasonChangedMind:          "changed_mind",
		ReasonBetterPriceAvailable: "better_price_available",
		ReasonOther:                "other",
	}
}

// ReasonFromString parses a Reason from its persisted string form.
func ReasonFromString(s string) (Reason, error) {
	for r, str := range getReasonStrings() {
		if str == s && r != ReasonUnknown {
			return r, nil
		}
	}
	return ReasonUnknown, errs.NewValueIsInvalidErrorWithCause("return reason", fmt.Errorf("%q is not a valid return reason", s))
}

// Validate checks if the Reason value is valid.
func (r Reason) Validate() error {
	if r == ReasonUnknown {
		return errs.NewValueIsInvalidErrorWithCause("return reason", fmt.Errorf("%d is not a valid return reason", r))
	}
	if _, ok := getReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("return reason", fmt.Errorf("%d is not a valid return reason", r))
	}
	return nil
}

// String returns the persisted string form of the reason.
func (r Reason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// RefundMethod is the channel a refund is paid through.
type RefundMethod int

const (
	RefundMethodUnknown RefundMethod = iota

	// RefundToOriginalPayment reverses the original payment.
	RefundToOriginalPayment

	// RefundToStoreCredit issues store credit.
	RefundToStoreCredit

	// RefundByBankTransfer pays out to a bank account.
	RefundByBankTransfer

	// RefundToWallet tops up the customer's wallet.
	RefundToWallet
)

func getRefundMethodStrings() map[RefundMethod]string {
	return map[RefundMethod]string{
		RefundMethodUnknown:     "unknown",
		RefundToOriginalPayment: "original_payment",
		RefundToStoreCredit:     "store_credit",
		RefundByBankTransfer:    "bank_transfer",
		RefundToWallet:          "wallet",
	}
}

// RefundMethodFromString parses a RefundMethod from its persisted string form.
func RefundMethodFromString(s string) (RefundMethod, error) {
	for m, str := range getRefundMethodStrings() {
		if str == s && m != RefundMethodUnknown {
			return m, nil
		}
	}
	return RefundMethodUnknown, errs.NewValueIsInvalidErrorWithCause("refund method", fmt.Errorf("%q is not a valid refund method", s))
}

// Validate checks if the RefundMethod value is valid.
func (m RefundMethod) Validate() error {
	if m == RefundMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause("refund method", fmt.Errorf("%d is not a valid refund method", m))
	}
	if _, ok := getRefundMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("refund method", fmt.Errorf("%d is not a valid refund method", m))
	}
	return nil
}

// String returns the persisted string form of the refund method.
func (m RefundMethod) String() string {
	if str, ok := getRefundMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Type is how an approved return settles: money back or a replacement item.
type Type int

const (
	TypeUnknown Type = iota

	// TypeRefund settles with money back through the refund method.
	TypeRefund

	// TypeExchange settles with a replacement item.
	TypeExchange
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "unknown",
		TypeRefund:   "refund",
		TypeExchange: "exchange",
	}
}

// TypeFromString parses a Type from its persisted string form.
func TypeFromString(s string) (Type, error) {
	for ty, str := range getTypeStrings() {
		if str == s && ty != TypeUnknown {
			return ty, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("return type", fmt.Errorf("%q is not a valid return type", s))
}

// Validate checks if the Type value is valid.
func (ty Type) Validate() error {
	if ty != TypeRefund && ty != TypeExchange {
		return errs.NewValueIsInvalidErrorWithCause("return type", fmt.Errorf("%d is not a valid return type", ty))
	}
	return nil
}

// String returns the persisted string form of the return type.
func (ty Type) String() string {
	if str, ok := getTypeStrings()[ty]; ok {
		return str
	}
	return "unknown"
}
