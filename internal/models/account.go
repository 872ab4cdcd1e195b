package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned by Debit when the balance cannot cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Account is the per-conversation banking aggregate.
type Account struct {
	Username          string          `json:"username"`
	Balance           decimal.Decimal `json:"balance"`
	TimesHelped       int             `json:"timesHelped"`
	TransactionsMade  int             `json:"transactionsMade"`
	RecommendedUpsell bool            `json:"recommendedUpsell"`
}

// CanCover reports whether the balance covers amount without going negative.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
