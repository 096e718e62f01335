// Package savings implements the deposit-scheme math: the month-by-month
// goal projection and the running-balance replay over recorded deposits.
package savings

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Projection is the promise shown against a goal's parameters.
type Projection struct {
	TargetAmount  decimal.Decimal // deposits only, no compounding
	MaturityValue decimal.Decimal // deposits plus monthly-compounded profit
}

// Project simulates the goal month by month: each month the deposit is
// added first, then one month of interest accrues on the whole balance.
// Rounding happens once at the end, not per step. The iterative walk is
// the contract here; a closed-form annuity formula rounds differently
// and would change the figures shown to the user.
func Project(monthlyDeposit decimal.Decimal, years int, profitPercent decimal.Decimal) Projection {
	monthlyRate := profitPercent.Div(hundred).Div(twelve)
	totalMonths := years * 12

	balance := decimal.Zero
	invested := decimal.Zero
	for month := 0; month < totalMonths; month++ {
		balance = balance.Add(monthlyDeposit)
		invested = invested.Add(monthlyDeposit)
		balance = balance.Add(balance.Mul(monthlyRate))
	}

	return Projection{
		TargetAmount:  invested.Round(0),
		MaturityValue: balance.Round(0),
	}
}

// ProjectPlan applies Project to a stored plan's parameters.
func ProjectPlan(plan model.SavingsPlan) Projection {
	return Project(plan.MonthlyDeposit, plan.Years, plan.ProfitPercent)
}

// ReplayStep is one deposit annotated with the profit accrued at that
// step and the balance after it.
type ReplayStep struct {
	Record         model.SavingsRecord
	StepProfit     decimal.Decimal
	RunningBalance decimal.Decimal
}

// Replay walks a goal's deposits oldest-first, carrying a running balance
// from zero: each step adds the deposit, then one month of profit on the
// post-deposit balance. Records referencing other goals are skipped.
//
// Replay output is a pure function of the record set. Any edit or delete
// inside the sequence invalidates every later step, so callers always
// recompute the whole walk; there is no incremental patch path.
func Replay(goal model.SavingsGoal, records []model.SavingsRecord) []ReplayStep {
	monthlyRate := goal.ProfitPercent.Div(hundred).Div(twelve)

	mine := make([]model.SavingsRecord, 0, len(records))
	for _, rec := range records {
		if rec.GoalID == goal.ID {
			mine = append(mine, rec)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Date < mine[j].Date
	})

	steps := make([]ReplayStep, 0, len(mine))
	running := decimal.Zero
	for _, rec := range mine {
		afterDeposit := running.Add(rec.Amount)
		profit := afterDeposit.Mul(monthlyRate)
		running = afterDeposit.Add(profit)
		steps = append(steps, ReplayStep{
			Record:         rec,
			StepProfit:     profit,
			RunningBalance: running,
		})
	}
	return steps
}

// CurrentAmount is the running sum of a goal's raw deposit amounts,
// stamped back onto the goal whenever its records change.
func CurrentAmount(goalID string, records []model.SavingsRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if rec.GoalID == goalID {
			total = total.Add(rec.Amount)
		}
	}
	return total
}

// Analytics are the dashboard rollups over replay output. They are sums
// over the same steps rendered row by row, so the totals always match
// the per-row figures.
type Analytics struct {
	NetSavings      decimal.Decimal // raw deposits
	AccruedProfit   decimal.Decimal // sum of step profits
	WealthPortfolio decimal.Decimal // deposits plus profit
}

// Rollup folds replay steps into the dashboard analytics.
func Rollup(steps []ReplayStep) Analytics {
	a := Analytics{
		NetSavings:      decimal.Zero,
		AccruedProfit:   decimal.Zero,
		WealthPortfolio: decimal.Zero,
	}
	for _, s := range steps {
		a.NetSavings = a.NetSavings.Add(s.Record.Amount)
		a.AccruedProfit = a.AccruedProfit.Add(s.StepProfit)
	}
	a.WealthPortfolio = a.NetSavings.Add(a.AccruedProfit)
	return a
}

// RollupAll replays every goal and folds the results into one Analytics.
func RollupAll(goals []model.SavingsGoal, records []model.SavingsRecord) Analytics {
	a := Analytics{
		NetSavings:      decimal.Zero,
		AccruedProfit:   decimal.Zero,
		WealthPortfolio: decimal.Zero,
	}
	for _, goal := range goals {
		ga := Rollup(Replay(goal, records))
		a.NetSavings = a.NetSavings.Add(ga.NetSavings)
		a.AccruedProfit = a.AccruedProfit.Add(ga.AccruedProfit)
	}
	a.WealthPortfolio = a.NetSavings.Add(a.AccruedProfit)
	return a
}
