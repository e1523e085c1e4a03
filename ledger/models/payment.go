package models

import "github.com/shopspring/decimal"

type CreateCard struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type CreatedCard struct {
	CardNumber     string          `json:"card_number"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type Balance struct {
	CardNumber string          `json:"card_number"`
	Balance    decimal.Decimal `json:"balance"`
}

type PaymentRequest struct {
	CardNumber string          `json:"card_number"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentOutcome describes a settled payment. TotalAmount is the amount plus
// the fee charged, and Balance is the card balance after the debit.
type PaymentOutcome struct {
	CardNumber  string          `json:"card_number"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Balance     decimal.Decimal `json:"balance"`
}
