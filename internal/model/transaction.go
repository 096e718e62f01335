package model

import "github.com/shopspring/decimal"

// TransactionType classifies a transaction's effect on net worth.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Categories used for transactions created on behalf of a domain record.
const (
	CategoryBill    = "Bill"
	CategoryDPS     = "DPS"
	CategoryBetting = "Betting"
)

// Transaction is the single source of truth for income/expense aggregates.
// It is created directly by the user, or by the linkage layer on behalf of
// a Bill, SavingsRecord, or deposit-type BettingRecord.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
}
