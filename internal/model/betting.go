package model

import "github.com/shopspring/decimal"

// BettingType distinguishes money moved into a betting account from money
// taken back out. The persisted field is named "status" for compatibility
// with the stored document shape.
type BettingType string

const (
	BetDeposit  BettingType = "deposit"
	BetWithdraw BettingType = "withdraw"
)

// BettingRecord tracks a betting-account movement. Only deposits own a
// linked expense transaction (category "Betting"); withdrawals never do.
type BettingRecord struct {
	ID            string          `json:"id"`
	Type          BettingType     `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Note          string          `json:"note"`
	TransactionID string          `json:"transactionId,omitempty"`
}
