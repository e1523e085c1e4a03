package models

import "github.com/shopspring/decimal"

// Card is one issued payment instrument. ID, OwnerID and CardNumber are
// immutable after creation; Balance and LastFee change only on successful
// payments.
type Card struct {
	ID         string
	OwnerID    string
	CardNumber string
	Balance    decimal.Decimal
	// LastFee is unset until the card's first successful payment; afterwards
	// it holds the fee charged on the most recent payment and feeds the next
	// fee computation.
	LastFee decimal.NullDecimal
}
