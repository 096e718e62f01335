package model

import "github.com/shopspring/decimal"

// SalaryEntry is one step in the salary history. Entries chain
// chronologically: AmountAdd and Total are recomputed from the previous
// entry's Total whenever the timeline changes. Seq orders entries that
// share a year (insertion order within the year, not record id order).
type SalaryEntry struct {
	ID              string          `json:"id"`
	Year            int             `json:"year"`
	Seq             int             `json:"seq"`
	IncreasePercent decimal.Decimal `json:"increasePercent"`
	AmountAdd       decimal.Decimal `json:"amountAdd"`
	Total           decimal.Decimal `json:"total"`
	BaseDeduction   decimal.Decimal `json:"baseDeduction"`
}
