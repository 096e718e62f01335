package model

import "github.com/shopspring/decimal"

// SavingsGoal is a deposit scheme the user pays into monthly.
//
// TargetAmount and MaturityValue are recomputed from (MonthlyDeposit,
// Years, ProfitPercent) whenever those inputs change; CurrentAmount is the
// running sum of the goal's deposit records. All three are persisted for
// display but are never authoritative.
type SavingsGoal struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MonthlyDeposit decimal.Decimal `json:"monthlyDeposit"`
	Years          int             `json:"years"`
	ProfitPercent  decimal.Decimal `json:"profitPercent"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	MaturityValue  decimal.Decimal `json:"maturityValue"`
	CurrentAmount  decimal.Decimal `json:"currentAmount"`
	Color          string          `json:"color"`
}

// SavingsRecord is one deposit toward a goal. GoalID is a weak reference:
// a record whose goal no longer exists is treated as orphaned, not an
// error. Each record owns at most one linked expense transaction
// (category "DPS").
type SavingsRecord struct {
	ID            string          `json:"id"`
	GoalID        string          `json:"goalId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Note          string          `json:"note"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// SavingsPlan holds the default goal parameters offered to a fresh
// account before the user creates any goal of their own.
type SavingsPlan struct {
	MonthlyDeposit decimal.Decimal `json:"monthlyDeposit"`
	Years          int             `json:"years"`
	ProfitPercent  decimal.Decimal `json:"profitPercent"`
}
