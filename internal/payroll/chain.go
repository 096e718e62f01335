// Package payroll maintains the salary history chain. Entries order by
// (year, seq), never raw record id, and every entry after the first
// recomputes from its predecessor's total.
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Rebuild sorts entries chronologically and recomputes AmountAdd and
// Total along the chain. The oldest entry anchors the chain: its Total
// is the user-entered base salary and is left untouched. For each later
// entry:
//
//	amountAdd = round((previousTotal - baseDeduction) * increasePercent / 100)
//	total     = previousTotal + amountAdd
func Rebuild(entries []model.SalaryEntry) []model.SalaryEntry {
	out := make([]model.SalaryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Seq < out[j].Seq
	})

	for i := 1; i < len(out); i++ {
		prev := out[i-1].Total
		raise := prev.Sub(out[i].BaseDeduction).
			Mul(out[i].IncreasePercent).
			Div(hundred).
			Round(0)
		out[i].AmountAdd = raise
		out[i].Total = prev.Add(raise)
	}
	return out
}

// Insert places a new entry at the end of its year (next free seq) and
// rebuilds the chain.
func Insert(entries []model.SalaryEntry, entry model.SalaryEntry) []model.SalaryEntry {
	maxSeq := 0
	for _, e := range entries {
		if e.Year == entry.Year && e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}
	entry.Seq = maxSeq + 1
	return Rebuild(append(append([]model.SalaryEntry{}, entries...), entry))
}

// Latest returns the chronologically newest entry, if any.
func Latest(entries []model.SalaryEntry) (model.SalaryEntry, bool) {
	if len(entries) == 0 {
		return model.SalaryEntry{}, false
	}
	chain := Rebuild(entries)
	return chain[len(chain)-1], true
}
