package model

import "github.com/shopspring/decimal"

// DefaultSavingsPlan returns the starter plan shown to a fresh account:
// 5000/month for 3 years at 12% annual profit.
func DefaultSavingsPlan() SavingsPlan {
	return SavingsPlan{
		MonthlyDeposit: decimal.NewFromInt(5000),
		Years:          3,
		ProfitPercent:  decimal.NewFromInt(12),
	}
}

// DefaultLeaveQuotas returns the yearly caps for each leave type.
func DefaultLeaveQuotas() []LeaveQuota {
	return []LeaveQuota{
		{TypeID: LeaveCasual, TotalDaysPerYear: 10},
		{TypeID: LeaveMedical, TotalDaysPerYear: 14},
		{TypeID: LeaveAnnual, TotalDaysPerYear: 20},
	}
}

// DefaultPreferences returns the UI settings for a fresh account.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:   "en",
		Theme:      "dark",
		ActiveView: "dashboard",
	}
}

// NewDocument returns an empty, normalized document for a new user.
func NewDocument() Document {
	var d Document
	d.Normalize()
	return d
}
