package model

import "slices"

// Preferences are UI settings persisted alongside the data so a session
// resumes where it left off.
type Preferences struct {
	Language   string `json:"language"`
	Theme      string `json:"theme"`
	ActiveView string `json:"activeView"`
}

// Document is the entire application state for one user, persisted as a
// single JSON blob with upsert semantics (last writer wins).
type Document struct {
	Transactions      []Transaction      `json:"transactions"`
	Bills             []Bill             `json:"bills"`
	SavingsGoals      []SavingsGoal      `json:"savingsGoals"`
	SavingsRecords    []SavingsRecord    `json:"savingsRecords"`
	SavingsPlan       *SavingsPlan       `json:"savingsPlan,omitempty"`
	BettingRecords    []BettingRecord    `json:"bettingRecords"`
	Reminders         []Reminder         `json:"reminders"`
	Holidays          []Holiday          `json:"holidays"`
	SalaryHistory     []SalaryEntry      `json:"salaryHistory"`
	LeaveRecords      []LeaveRecord      `json:"leaveRecords"`
	LeaveQuotas       []LeaveQuota       `json:"leaveQuotas"`
	AttendanceRecords []AttendanceRecord `json:"attendanceRecords"`
	Preferences       Preferences        `json:"preferences"`
}

// Clone returns a copy sharing no slices with the receiver, safe to
// hand to another goroutine for serialization.
func (d Document) Clone() Document {
	out := d
	out.Transactions = slices.Clone(d.Transactions)
	out.Bills = slices.Clone(d.Bills)
	out.SavingsGoals = slices.Clone(d.SavingsGoals)
	out.SavingsRecords = slices.Clone(d.SavingsRecords)
	if d.SavingsPlan != nil {
		plan := *d.SavingsPlan
		out.SavingsPlan = &plan
	}
	out.BettingRecords = slices.Clone(d.BettingRecords)
	out.Reminders = slices.Clone(d.Reminders)
	out.Holidays = slices.Clone(d.Holidays)
	out.SalaryHistory = slices.Clone(d.SalaryHistory)
	out.LeaveRecords = slices.Clone(d.LeaveRecords)
	out.LeaveQuotas = slices.Clone(d.LeaveQuotas)
	out.AttendanceRecords = slices.Clone(d.AttendanceRecords)
	return out
}

// Normalize fills in documented defaults for fields absent from a loaded
// document: nil collections become empty, a missing savings plan becomes
// the starter plan, missing quotas and preferences get their defaults.
func (d *Document) Normalize() {
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Bills == nil {
		d.Bills = []Bill{}
	}
	if d.SavingsGoals == nil {
		d.SavingsGoals = []SavingsGoal{}
	}
	if d.SavingsRecords == nil {
		d.SavingsRecords = []SavingsRecord{}
	}
	if d.SavingsPlan == nil {
		plan := DefaultSavingsPlan()
		d.SavingsPlan = &plan
	}
	if d.BettingRecords == nil {
		d.BettingRecords = []BettingRecord{}
	}
	if d.Reminders == nil {
		d.Reminders = []Reminder{}
	}
	if d.Holidays == nil {
		d.Holidays = []Holiday{}
	}
	if d.SalaryHistory == nil {
		d.SalaryHistory = []SalaryEntry{}
	}
	if d.LeaveRecords == nil {
		d.LeaveRecords = []LeaveRecord{}
	}
	if d.LeaveQuotas == nil {
		d.LeaveQuotas = DefaultLeaveQuotas()
	}
	if d.AttendanceRecords == nil {
		d.AttendanceRecords = []AttendanceRecord{}
	}
	if d.Preferences.Language == "" {
		d.Preferences.Language = DefaultPreferences().Language
	}
	if d.Preferences.Theme == "" {
		d.Preferences.Theme = DefaultPreferences().Theme
	}
	if d.Preferences.ActiveView == "" {
		d.Preferences.ActiveView = DefaultPreferences().ActiveView
	}
}
