package savings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProject_OneYearScenario(t *testing.T) {
	p := Project(dec("5000"), 1, dec("12"))

	// Invested is deposit-only: 5000 * 12.
	assert.True(t, p.TargetAmount.Equal(dec("60000")), "got %s", p.TargetAmount)
	// Compounding produced a surplus over the invested amount.
	assert.True(t, p.MaturityValue.GreaterThan(dec("60000")), "got %s", p.MaturityValue)
}

func TestProject_TargetIsExactProduct(t *testing.T) {
	p := Project(dec("3500"), 5, dec("8.5"))
	assert.True(t, p.TargetAmount.Equal(dec("210000")), "5 years of 3500/month, got %s", p.TargetAmount)
}

func TestProject_MonotonicInRate(t *testing.T) {
	prev := Project(dec("5000"), 2, decimal.Zero).MaturityValue
	for _, rate := range []string{"1", "4", "8", "12", "15"} {
		cur := Project(dec("5000"), 2, dec(rate)).MaturityValue
		assert.True(t, cur.GreaterThan(prev), "maturity at %s%% (%s) should exceed previous (%s)", rate, cur, prev)
		prev = cur
	}
}

func TestProject_ZeroRate(t *testing.T) {
	p := Project(dec("1000"), 3, decimal.Zero)
	assert.True(t, p.TargetAmount.Equal(dec("36000")))
	assert.True(t, p.MaturityValue.Equal(dec("36000")), "no profit means maturity equals invested")
}

func TestProject_ZeroDuration(t *testing.T) {
	p := Project(dec("1000"), 0, dec("12"))
	assert.True(t, p.TargetAmount.IsZero())
	assert.True(t, p.MaturityValue.IsZero())
}

func goalFixture() model.SavingsGoal {
	return model.SavingsGoal{ID: "g1", Name: "DPS", ProfitPercent: dec("12")}
}

func TestReplay_SingleDeposit(t *testing.T) {
	goal := goalFixture()
	steps := Replay(goal, []model.SavingsRecord{
		{ID: "r1", GoalID: "g1", Amount: dec("5000"), Date: "2026-01-10"},
	})
	require.Len(t, steps, 1)

	// 5000 * (12 / 100 / 12) = 50 profit on the first month.
	assert.True(t, steps[0].StepProfit.Equal(dec("50")), "got %s", steps[0].StepProfit)
	assert.True(t, steps[0].RunningBalance.Equal(dec("5050")), "got %s", steps[0].RunningBalance)
}

func TestReplay_OrderedByDateNotInput(t *testing.T) {
	goal := goalFixture()
	records := []model.SavingsRecord{
		{ID: "r2", GoalID: "g1", Amount: dec("5000"), Date: "2026-02-10"},
		{ID: "r1", GoalID: "g1", Amount: dec("5000"), Date: "2026-01-10"},
	}
	steps := Replay(goal, records)
	require.Len(t, steps, 2)

	assert.Equal(t, "r1", steps[0].Record.ID, "oldest deposit replays first")
	assert.True(t, steps[0].RunningBalance.Equal(dec("5050")))
	// Second step: (5050 + 5000) * 1.01 = 10150.50.
	assert.True(t, steps[1].StepProfit.Equal(dec("100.50")), "got %s", steps[1].StepProfit)
	assert.True(t, steps[1].RunningBalance.Equal(dec("10150.50")), "got %s", steps[1].RunningBalance)
}

func TestReplay_SkipsOtherGoalsAndOrphans(t *testing.T) {
	goal := goalFixture()
	records := []model.SavingsRecord{
		{ID: "r1", GoalID: "g1", Amount: dec("1000"), Date: "2026-01-01"},
		{ID: "r2", GoalID: "g2", Amount: dec("9999"), Date: "2026-01-02"},
		{ID: "r3", GoalID: "gone", Amount: dec("9999"), Date: "2026-01-03"},
	}
	steps := Replay(goal, records)
	require.Len(t, steps, 1)
	assert.Equal(t, "r1", steps[0].Record.ID)
}

func TestReplay_Idempotent(t *testing.T) {
	goal := goalFixture()
	records := []model.SavingsRecord{
		{ID: "r1", GoalID: "g1", Amount: dec("5000"), Date: "2026-01-10"},
		{ID: "r2", GoalID: "g1", Amount: dec("4500"), Date: "2026-02-10"},
		{ID: "r3", GoalID: "g1", Amount: dec("5500"), Date: "2026-03-10"},
	}
	first := Replay(goal, records)
	second := Replay(goal, records)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].StepProfit.Equal(second[i].StepProfit))
		assert.True(t, first[i].RunningBalance.Equal(second[i].RunningBalance))
	}
}

func TestCurrentAmount(t *testing.T) {
	records := []model.SavingsRecord{
		{GoalID: "g1", Amount: dec("5000")},
		{GoalID: "g1", Amount: dec("4500")},
		{GoalID: "g2", Amount: dec("100")},
	}
	assert.True(t, CurrentAmount("g1", records).Equal(dec("9500")))
	assert.True(t, CurrentAmount("g3", records).IsZero())
}

func TestRollup_MatchesReplayRows(t *testing.T) {
	goal := goalFixture()
	records := []model.SavingsRecord{
		{ID: "r1", GoalID: "g1", Amount: dec("5000"), Date: "2026-01-10"},
		{ID: "r2", GoalID: "g1", Amount: dec("5000"), Date: "2026-02-10"},
	}
	steps := Replay(goal, records)
	a := Rollup(steps)

	assert.True(t, a.NetSavings.Equal(dec("10000")))
	wantProfit := steps[0].StepProfit.Add(steps[1].StepProfit)
	assert.True(t, a.AccruedProfit.Equal(wantProfit), "rollup must reuse the replay's own step profits")
	assert.True(t, a.WealthPortfolio.Equal(a.NetSavings.Add(a.AccruedProfit)))
}

func TestRollupAll_TwoGoals(t *testing.T) {
	goals := []model.SavingsGoal{
		{ID: "g1", ProfitPercent: dec("12")},
		{ID: "g2", ProfitPercent: dec("6")},
	}
	records := []model.SavingsRecord{
		{ID: "r1", GoalID: "g1", Amount: dec("5000"), Date: "2026-01-10"},
		{ID: "r2", GoalID: "g2", Amount: dec("2000"), Date: "2026-01-15"},
	}
	a := RollupAll(goals, records)
	assert.True(t, a.NetSavings.Equal(dec("7000")))
	// 5000*0.01 + 2000*0.005 = 50 + 10.
	assert.True(t, a.AccruedProfit.Equal(dec("60")), "got %s", a.AccruedProfit)
	assert.True(t, a.WealthPortfolio.Equal(dec("7060")))
}

func TestProjectPlan(t *testing.T) {
	plan := model.DefaultSavingsPlan()
	p := ProjectPlan(plan)
	assert.True(t, p.TargetAmount.Equal(dec("180000")), "3 years of 5000/month, got %s", p.TargetAmount)
	assert.True(t, p.MaturityValue.GreaterThan(p.TargetAmount))
}
