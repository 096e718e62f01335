// Package aggregate derives read views over the transaction ledger:
// period filters, income/expense totals, category breakdowns, and the
// 12-month chart series. Every function is pure and re-derivable at any
// time from the document; empty input always yields zero totals, never
// an error.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/dateutil"
	"github.com/finbook-dev/finbook/internal/model"
)

// AllMonths selects the whole year in FilterByPeriod.
const AllMonths = "all"

var hundred = decimal.NewFromInt(100)

// FilterByPeriod returns the transactions falling in the given "YYYY"
// year and "MM" month. Month AllMonths selects the whole year.
func FilterByPeriod(txs []model.Transaction, year, month string) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !dateutil.InYear(tx.Date, year) {
			continue
		}
		if month != AllMonths && dateutil.MonthOf(tx.Date) != month {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Totals holds the income and expense sums for a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// SumByType folds transactions into income and expense totals.
func SumByType(txs []model.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case model.TypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	return totals
}

// CategoryTotal is one row of a category breakdown. Percent is the share
// of the type's grand total, rounded to 2 places, zero when the grand
// total is zero.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Percent  decimal.Decimal
}

// CategoryBreakdown groups transactions of one type by category, sorted
// by total descending (category name breaks ties for a stable order).
func CategoryBreakdown(txs []model.Transaction, typ model.TransactionType) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	var order []string
	grand := decimal.Zero
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		if _, seen := byCategory[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		grand = grand.Add(tx.Amount)
	}

	rows := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		total := byCategory[cat]
		percent := decimal.Zero
		if grand.IsPositive() {
			percent = total.Mul(hundred).Div(grand).Round(2)
		}
		rows = append(rows, CategoryTotal{Category: cat, Total: total, Percent: percent})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// MonthBucket is one month of the year-over-year chart series.
type MonthBucket struct {
	Month   string // "01".."12"
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySeries buckets a year's transactions by month. All 12 buckets
// are always present, zero-valued when a month has no transactions.
func MonthlySeries(txs []model.Transaction, year string) []MonthBucket {
	series := make([]MonthBucket, 12)
	for i := range series {
		series[i] = MonthBucket{
			Month:   fmt.Sprintf("%02d", i+1),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}
	for _, tx := range FilterByPeriod(txs, year, AllMonths) {
		idx := monthIndex(dateutil.MonthOf(tx.Date))
		if idx < 0 {
			continue
		}
		switch tx.Type {
		case model.TypeIncome:
			series[idx].Income = series[idx].Income.Add(tx.Amount)
		case model.TypeExpense:
			series[idx].Expense = series[idx].Expense.Add(tx.Amount)
		}
	}
	return series
}

func monthIndex(mm string) int {
	if len(mm) != 2 {
		return -1
	}
	n := int(mm[0]-'0')*10 + int(mm[1]-'0')
	if n < 1 || n > 12 {
		return -1
	}
	return n - 1
}
