package ledger_test

import (
	"testing"
	"time"

	"github.com/alovak/rapidpay/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFeeOracle_GetFee(t *testing.T) {
	oracle := ledger.NewFeeOracle(testLogger(), time.Hour)

	multiplier := oracle.CurrentMultiplier()
	require.True(t, multiplier.GreaterThanOrEqual(decimal.Zero))
	require.True(t, multiplier.LessThan(decimal.NewFromInt(2)))

	t.Run("no previous fee returns the multiplier", func(t *testing.T) {
		fee := oracle.GetFee(decimal.NullDecimal{})
		require.True(t, fee.Equal(multiplier))
	})

	t.Run("previous fee is scaled by the multiplier", func(t *testing.T) {
		lastFee := decimal.NewNullDecimal(decimal.NewFromInt(10))
		fee := oracle.GetFee(lastFee)
		require.True(t, fee.Equal(decimal.NewFromInt(10).Mul(multiplier)))
	})
}

func TestFeeOracle_Rotation(t *testing.T) {
	oracle := ledger.NewFeeOracle(testLogger(), 5*time.Millisecond)
	oracle.Start()

	initial := oracle.CurrentMultiplier()

	require.Eventually(t, func() bool {
		return !oracle.CurrentMultiplier().Equal(initial)
	}, time.Second, 5*time.Millisecond, "multiplier never rotated")

	rotated := oracle.CurrentMultiplier()
	require.True(t, rotated.GreaterThanOrEqual(decimal.Zero))
	require.True(t, rotated.LessThan(decimal.NewFromInt(2)))

	// Stop joins the rotation goroutine; reads still work afterwards.
	oracle.Stop()
	oracle.GetFee(decimal.NullDecimal{})
}
