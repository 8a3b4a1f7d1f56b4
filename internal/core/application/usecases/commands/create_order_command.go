package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
	ErrPaymentRefIsRequired  = errors.New("payment reference is required for online payment")
)

// OrderLine is one requested line of a new order: which product and how many
// units. Catalog details (name, price) are snapshotted from the ledger by
// the handler, never trusted from the caller.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to place a new order.
// Carries the requested lines, the pricing adjustments and the payment
// intent; stock checks and catalog snapshots happen in the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	lines          []OrderLine
	deliveryCharge kernel.Money
	tax            kernel.Money
	discount       kernel.Money
	couponDiscount kernel.Money
	paymentMethod  order.PaymentMethod
	paymentRef     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, requires at least one line with positive quantity,
// and requires a payment reference for online payments.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	lines []OrderLine,
	deliveryCharge, tax, discount, couponDiscount kernel.Money,
	paymentMethod order.PaymentMethod,
	paymentRef string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if paymentMethod == order.PaymentMethodOnline && paymentRef == "" {
		return CreateOrderCommand{}, ErrPaymentRefIsRequired
	}

	cmd.deliveryCharge = deliveryCharge
	cmd.tax = tax
	cmd.discount = discount
	cmd.couponDiscount = couponDiscount
	cmd.paymentMethod = paymentMethod
	cmd.paymentRef = paymentRef

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// DeliveryCharge returns the delivery charge to apply.
func (c CreateOrderCommand) DeliveryCharge() kernel.Money {
	return c.deliveryCharge
}

// Tax returns the tax amount to apply.
func (c CreateOrderCommand) Tax() kernel.Money {
	return c.tax
}

// Discount returns the discount to apply.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// CouponDiscount returns the coupon discount to apply.
func (c CreateOrderCommand) CouponDiscount() kernel.Money {
	return c.couponDiscount
}

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// PaymentRef returns the gateway reference for online payments.
func (c CreateOrderCommand) PaymentRef() string {
	return c.paymentRef
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("line quantity")
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
