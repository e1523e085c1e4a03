package ledger_test

import (
	"context"
	"testing"

	"github.com/alovak/rapidpay/internal/cardnum"
	"github.com/alovak/rapidpay/ledger"
	"github.com/alovak/rapidpay/ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	cards := ledger.NewCardService(store, testLogger())

	result, err := cards.CreateCard(ctx, models.CreateCard{
		InitialBalance: decimal.NewFromInt(500),
	}, "u1")
	require.NoError(t, err)
	require.Equal(t, ledger.StatusSuccess, result.Status())

	created := result.Payload()
	require.True(t, cardnum.IsValid(created.CardNumber))
	require.True(t, created.InitialBalance.Equal(decimal.NewFromInt(500)))

	t.Run("owner can read the balance", func(t *testing.T) {
		result := cards.GetBalance(created.CardNumber, "u1")
		require.Equal(t, ledger.StatusSuccess, result.Status())
		require.True(t, result.Payload().Balance.Equal(decimal.NewFromInt(500)))
		require.Equal(t, created.CardNumber, result.Payload().CardNumber)
	})

	t.Run("someone else cannot", func(t *testing.T) {
		result := cards.GetBalance(created.CardNumber, "u2")
		require.Equal(t, ledger.StatusSecureFailure, result.Status())
		require.True(t, result.Payload().Balance.IsZero(), "payload must carry no balance")
	})

	t.Run("allocated numbers stay unique", func(t *testing.T) {
		seen := map[string]bool{created.CardNumber: true}
		for i := 0; i < 20; i++ {
			result, err := cards.CreateCard(ctx, models.CreateCard{
				InitialBalance: decimal.NewFromInt(1),
			}, "u1")
			require.NoError(t, err)
			require.Equal(t, ledger.StatusSuccess, result.Status())

			number := result.Payload().CardNumber
			require.True(t, cardnum.IsValid(number))
			require.False(t, seen[number])
			seen[number] = true
		}
	})
}

func TestGetBalance_Validation(t *testing.T) {
	store := newTestStore(t)
	cards := ledger.NewCardService(store, testLogger())

	t.Run("malformed numbers are a plain failure", func(t *testing.T) {
		for _, number := range []string{"", "1234", "1234567890123456", "12345678901234x"} {
			result := cards.GetBalance(number, "u1")
			require.Equal(t, ledger.StatusFailure, result.Status(), "number %q", number)
			require.Equal(t, "Card number is not valid.", result.Message())
		}
	})

	t.Run("well-formed but unknown number is a secure failure", func(t *testing.T) {
		result := cards.GetBalance("123456789012345", "u1")
		require.Equal(t, ledger.StatusSecureFailure, result.Status())
		require.Equal(t, "Card 1234 **** **** 345 does not exist.", result.Message())
	})
}
