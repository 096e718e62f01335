package model

// LeaveType identifies a leave category with its own yearly quota.
type LeaveType string

const (
	LeaveCasual  LeaveType = "casual"
	LeaveMedical LeaveType = "medical"
	LeaveAnnual  LeaveType = "annual"
)

// LeaveStatus is the approval state of a leave application.
type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "Approved"
	LeavePending  LeaveStatus = "Pending"
	LeaveRejected LeaveStatus = "Rejected"
)

// LeaveRecord is one leave application. TotalDays is the inclusive day
// count of the range, derived at the edit boundary. Only Approved records
// consume quota.
type LeaveRecord struct {
	ID        string      `json:"id"`
	TypeID    LeaveType   `json:"typeId"`
	StartDate string      `json:"startDate"` // YYYY-MM-DD
	EndDate   string      `json:"endDate"`   // YYYY-MM-DD
	TotalDays int         `json:"totalDays"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
	AppliedOn string      `json:"appliedOn"` // YYYY-MM-DD
}

// LeaveQuota caps one leave type. The cap is year-independent; usage is
// computed per year from the records.
type LeaveQuota struct {
	TypeID           LeaveType `json:"typeId"`
	TotalDaysPerYear int       `json:"totalDaysPerYear"`
}
