package payroll

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

func TestRebuild_PercentIncrementWithDeduction(t *testing.T) {
	entries := []model.SalaryEntry{
		{ID: "a", Year: 2024, Seq: 1, Total: dec("14500")},
		{ID: "b", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("2450")},
	}
	chain := Rebuild(entries)
	require.Len(t, chain, 2)

	// round((14500 - 2450) * 0.10) = 1205
	assert.True(t, chain[1].AmountAdd.Equal(dec("1205")), "got %s", chain[1].AmountAdd)
	assert.True(t, chain[1].Total.Equal(dec("15705")), "got %s", chain[1].Total)
	// The anchor entry is untouched.
	assert.True(t, chain[0].Total.Equal(dec("14500")))
}

func TestRebuild_OrdersByYearThenSeq(t *testing.T) {
	// Inserted out of order; ids deliberately reversed.
	entries := []model.SalaryEntry{
		{ID: "z", Year: 2025, Seq: 2, IncreasePercent: dec("5"), BaseDeduction: dec("0")},
		{ID: "a", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
		{ID: "m", Year: 2024, Seq: 1, Total: dec("10000")},
	}
	chain := Rebuild(entries)
	require.Len(t, chain, 3)

	assert.Equal(t, "m", chain[0].ID)
	assert.Equal(t, "a", chain[1].ID)
	assert.Equal(t, "z", chain[2].ID)

	assert.True(t, chain[1].Total.Equal(dec("11000")), "10000 + 10%%, got %s", chain[1].Total)
	assert.True(t, chain[2].Total.Equal(dec("11550")), "11000 + 5%%, got %s", chain[2].Total)
}

func TestRebuild_MiddleEditRipples(t *testing.T) {
	entries := []model.SalaryEntry{
		{ID: "a", Year: 2023, Seq: 1, Total: dec("10000")},
		{ID: "b", Year: 2024, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
		{ID: "c", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
	}
	before := Rebuild(entries)
	assert.True(t, before[2].Total.Equal(dec("12100")), "10000 + 10%% + 10%%, got %s", before[2].Total)

	// Raise the middle increase; the tail must recompute.
	entries[1].IncreasePercent = dec("20")
	after := Rebuild(entries)
	assert.True(t, after[1].Total.Equal(dec("12000")))
	assert.True(t, after[2].Total.Equal(dec("13200")), "got %s", after[2].Total)
}

func TestRebuild_RoundsHalfUp(t *testing.T) {
	entries := []model.SalaryEntry{
		{ID: "a", Year: 2024, Seq: 1, Total: dec("10001")},
		{ID: "b", Year: 2025, Seq: 1, IncreasePercent: dec("7.5"), BaseDeduction: dec("1000")},
	}
	chain := Rebuild(entries)
	// (10001 - 1000) * 0.075 = 675.075 -> 675
	assert.True(t, chain[1].AmountAdd.Equal(dec("675")), "got %s", chain[1].AmountAdd)
}

func TestInsert_AssignsNextSeqWithinYear(t *testing.T) {
	entries := []model.SalaryEntry{
		{ID: "a", Year: 2024, Seq: 1, Total: dec("10000")},
		{ID: "b", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
	}
	chain := Insert(entries, model.SalaryEntry{ID: "c", Year: 2025, IncreasePercent: dec("5"), BaseDeduction: dec("0")})
	require.Len(t, chain, 3)

	assert.Equal(t, "c", chain[2].ID)
	assert.Equal(t, 2, chain[2].Seq, "second entry of 2025")
	assert.True(t, chain[2].Total.Equal(dec("11550")))
}

func TestInsert_BackdatedYearLandsInTheMiddle(t *testing.T) {
	entries := []model.SalaryEntry{
		{ID: "a", Year: 2023, Seq: 1, Total: dec("10000")},
		{ID: "c", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
	}
	chain := Insert(entries, model.SalaryEntry{ID: "b", Year: 2024, IncreasePercent: dec("10"), BaseDeduction: dec("0")})
	require.Len(t, chain, 3)

	// Chronological predecessor, not most recently inserted.
	assert.Equal(t, []string{"a", "b", "c"}, []string{chain[0].ID, chain[1].ID, chain[2].ID})
	assert.True(t, chain[1].Total.Equal(dec("11000")))
	assert.True(t, chain[2].Total.Equal(dec("12100")), "tail recomputed off the new predecessor")
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	entries := []model.SalaryEntry{
		{ID: "b", Year: 2025, Seq: 1, IncreasePercent: dec("10"), BaseDeduction: dec("0")},
		{ID: "a", Year: 2024, Seq: 1, Total: dec("10000")},
	}
	latest, ok := Latest(entries)
	require.True(t, ok)
	assert.Equal(t, "b", latest.ID)
	assert.True(t, latest.Total.Equal(dec("11000")))
}
