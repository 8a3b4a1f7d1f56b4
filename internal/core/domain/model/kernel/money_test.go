package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(499.50))

		require.NoError(t, err)
		assert.Equal(t, "499.5", m.String())
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromFloat(-0.01))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a := kernel.MustMoneyFromFloat(100.25)
		b := kernel.MustMoneyFromFloat(49.75)

		assert.Equal(t, "150", a.Add(b).String())
	})

	t.Run("sub", func(t *testing.T) {
		a := kernel.MustMoneyFromFloat(100)
		b := kernel.MustMoneyFromFloat(30.50)

		result, err := a.Sub(b)
		require.NoError(t, err)
		assert.Equal(t, "69.5", result.String())
	})

	t.Run("sub below zero fails", func(t *testing.T) {
		a := kernel.MustMoneyFromFloat(10)
		b := kernel.MustMoneyFromFloat(20)

		_, err := a.Sub(b)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("mul int keeps exact cents", func(t *testing.T) {
		price := kernel.MustMoneyFromFloat(0.10)

		assert.Equal(t, "0.3", price.MulInt(3).String())
	})

	t.Run("mul by restocking ratio", func(t *testing.T) {
		amount := kernel.MustMoneyFromFloat(1000)

		result, err := amount.Mul(decimal.NewFromFloat(0.9))
		require.NoError(t, err)
		assert.Equal(t, "900", result.String())
	})

	t.Run("mul by negative factor fails", func(t *testing.T) {
		amount := kernel.MustMoneyFromFloat(1000)

		_, err := amount.Mul(decimal.NewFromFloat(-1))
		require.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	t.Run("greater than", func(t *testing.T) {
		assert.True(t, kernel.MustMoneyFromFloat(10001).GreaterThan(kernel.MustMoneyFromFloat(10000)))
		assert.False(t, kernel.MustMoneyFromFloat(10000).GreaterThan(kernel.MustMoneyFromFloat(10000)))
	})

	t.Run("is equal ignores trailing zeros", func(t *testing.T) {
		a, err := kernel.NewMoney(decimal.RequireFromString("50.00"))
		require.NoError(t, err)

		assert.True(t, a.IsEqual(kernel.MustMoneyFromFloat(50)))
	})
}

func TestMustMoneyFromFloat(t *testing.T) {
	t.Run("panics on negative amount", func(t *testing.T) {
		assert.Panics(t, func() {
			kernel.MustMoneyFromFloat(-1)
		})
	})
}
