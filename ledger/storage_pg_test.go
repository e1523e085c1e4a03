package ledger_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alovak/rapidpay/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

// TestPGStorage_WriteThrough exercises the Postgres backend against a live
// database. Skips unless DB_DSN is provided.
func TestPGStorage_WriteThrough(t *testing.T) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set; skipping DB integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())

	ctx := context.Background()
	storage := ledger.NewPGStorage(db)

	store, err := ledger.NewCardStore(ctx, storage, testLogger())
	require.NoError(t, err)

	card := testCard("123456789012345", "u1", 500)
	if store.Exists(card.CardNumber) {
		t.Skip("fixture card already present; clean rapidpay.cards before running")
	}
	require.NoError(t, store.Create(ctx, card))
	defer db.Exec(`DELETE FROM rapidpay.cards WHERE card_number=$1`, card.CardNumber)

	card.Balance = decimal.NewFromInt(385)
	card.LastFee = decimal.NewNullDecimal(decimal.NewFromInt(15))
	require.NoError(t, store.Update(ctx, card))

	// a fresh store sees the persisted state via the startup scan
	reloaded, err := ledger.NewCardStore(ctx, ledger.NewPGStorage(db), testLogger())
	require.NoError(t, err)

	got, err := reloaded.Get(card.CardNumber)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(385)))
	require.True(t, got.LastFee.Valid)
	require.True(t, got.LastFee.Decimal.Equal(decimal.NewFromInt(15)))
}
