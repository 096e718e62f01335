package linkage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/savings"
)

// Violation describes a single integrity violation found in a document.
type Violation struct {
	Kind        string
	RecordID    string
	Description string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s [%s]: %s", v.Kind, v.RecordID, v.Description)
}

// Check audits a document against the linkage and derived-value
// invariants: every bill, savings deposit, and deposit-type betting
// record has exactly one matching transaction; withdrawals have none; no
// record-owned transaction is orphaned; stored goal projections match
// the projection engine's output for the current inputs. The checker
// only reports; repairs are left to the user.
func Check(doc model.Document) []Violation {
	var errs []Violation

	txByID := make(map[string]model.Transaction, len(doc.Transactions))
	for _, tx := range doc.Transactions {
		txByID[tx.ID] = tx
	}
	owned := make(map[string]bool)

	checkLink := func(kind, recordID, txID string, amount decimal.Decimal, date string) {
		if txID == "" {
			errs = append(errs, Violation{kind, recordID, "no linked transaction"})
			return
		}
		tx, ok := txByID[txID]
		if !ok {
			errs = append(errs, Violation{kind, recordID, fmt.Sprintf("linked transaction %s does not exist", txID)})
			return
		}
		owned[txID] = true
		if !tx.Amount.Equal(amount) {
			errs = append(errs, Violation{kind, recordID, fmt.Sprintf("amount %s does not match transaction amount %s", amount, tx.Amount)})
		}
		if tx.Date != date {
			errs = append(errs, Violation{kind, recordID, fmt.Sprintf("date %s does not match transaction date %s", date, tx.Date)})
		}
	}

	for _, b := range doc.Bills {
		checkLink("bill", b.ID, b.TransactionID, b.Amount, b.DueDate)
	}
	for _, r := range doc.SavingsRecords {
		checkLink("savings record", r.ID, r.TransactionID, r.Amount, r.Date)
	}
	for _, r := range doc.BettingRecords {
		switch r.Type {
		case model.BetDeposit:
			checkLink("betting record", r.ID, r.TransactionID, r.Amount, r.Date)
		case model.BetWithdraw:
			if r.TransactionID != "" {
				if _, ok := txByID[r.TransactionID]; ok {
					errs = append(errs, Violation{"betting record", r.ID, "withdrawal must not own a transaction"})
					owned[r.TransactionID] = true
				}
			}
		}
	}

	// Record-owned categories with no owning record corrupt net worth
	// silently, so they count as violations too.
	for _, tx := range doc.Transactions {
		switch tx.Category {
		case model.CategoryBill, model.CategoryDPS, model.CategoryBetting:
			if !owned[tx.ID] {
				errs = append(errs, Violation{"transaction", tx.ID, fmt.Sprintf("category %s transaction has no owning record", tx.Category)})
			}
		}
	}

	goalIDs := make(map[string]bool, len(doc.SavingsGoals))
	for _, g := range doc.SavingsGoals {
		goalIDs[g.ID] = true
		proj := savings.Project(g.MonthlyDeposit, g.Years, g.ProfitPercent)
		if !g.TargetAmount.Equal(proj.TargetAmount) {
			errs = append(errs, Violation{"savings goal", g.ID, fmt.Sprintf("stored target %s diverges from projected %s", g.TargetAmount, proj.TargetAmount)})
		}
		if !g.MaturityValue.Equal(proj.MaturityValue) {
			errs = append(errs, Violation{"savings goal", g.ID, fmt.Sprintf("stored maturity %s diverges from projected %s", g.MaturityValue, proj.MaturityValue)})
		}
		current := savings.CurrentAmount(g.ID, doc.SavingsRecords)
		if !g.CurrentAmount.Equal(current) {
			errs = append(errs, Violation{"savings goal", g.ID, fmt.Sprintf("stored current amount %s diverges from deposit sum %s", g.CurrentAmount, current)})
		}
	}
	for _, r := range doc.SavingsRecords {
		if !goalIDs[r.GoalID] {
			errs = append(errs, Violation{"savings record", r.ID, fmt.Sprintf("goal %s does not exist", r.GoalID)})
		}
	}

	return errs
}
