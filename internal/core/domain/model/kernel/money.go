package kernel

import (
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNegative indicates that a monetary amount would drop below zero.
// Amounts in the fulfillment domain are always non-negative; debts are not modeled.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount cannot be negative")

// Money is a value object that represents a non-negative amount of rupees.
// It wraps decimal.Decimal to guarantee exact arithmetic: order totals, refunds
// and earnings never accumulate binary floating point error.
//
// Money is immutable. Every operation returns a new value and leaves the
// receiver untouched, making it safe for concurrent use.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromFloat(499.50)
//	if err != nil {
//	    // handle error
//	}
//	total := price.MulInt(3)
//	fmt.Println(total.String()) // "1498.5"
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of zero rupees.
// Unlike UUID, the zero amount is a legitimate domain value (an order with no
// discount, an agent with no earnings yet), so Money has no constructor guard.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal amount.
// Returns ErrMoneyIsNegative if the amount is below zero.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// The float is converted through decimal.NewFromFloat, so values that read
// cleanly in source ("499.50") round-trip exactly.
// Returns ErrMoneyIsNegative if the amount is below zero.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoneyFromFloat is NewMoneyFromFloat for amounts known to be valid at
// compile time, such as domain constants. It panics on a negative amount.
func MustMoneyFromFloat(amount float64) Money {
	m, err := NewMoneyFromFloat(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
// Returns ErrMoneyIsNegative if the result would drop below zero.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulInt returns the amount multiplied by a non-negative integer factor,
// such as a line quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// Mul returns the amount scaled by a decimal factor, such as a restocking
// fee ratio. A negative factor yields ErrMoneyIsNegative.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor))
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// GreaterThan reports whether m is strictly larger than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual compares two amounts for numeric equality, ignoring trailing zeros.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Amount returns the underlying decimal value, primarily for persistence
// mapping and serialization.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for display purposes.
// Persistence must use Amount to avoid precision loss.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
