package model

// AttendanceType says what kind of day a record covers.
type AttendanceType string

const (
	DayStandard AttendanceType = "STANDARD"
	DayOff      AttendanceType = "OFF_DAY"
	DayHoliday  AttendanceType = "HOLIDAY"
)

// AttendanceStatus is the derived classification of a day.
type AttendanceStatus string

const (
	StatusOnTime     AttendanceStatus = "On Time"
	StatusLate       AttendanceStatus = "Late"
	StatusAbsent     AttendanceStatus = "Absent"
	StatusOutMissing AttendanceStatus = "Out Missing"
	StatusHoliday    AttendanceStatus = "Holiday"
	StatusWeeklyOff  AttendanceStatus = "Weekly Off"
)

// AttendanceRecord is one day of check-in/check-out data. Day and Status
// are derived from Date and the punch times at the edit boundary; CheckIn
// and CheckOut are 12-hour clock strings like "08:45 AM", empty when the
// punch is missing.
type AttendanceRecord struct {
	ID       string           `json:"id"`
	Date     string           `json:"date"` // YYYY-MM-DD
	Day      string           `json:"day"`  // weekday name
	Type     AttendanceType   `json:"type"`
	Status   AttendanceStatus `json:"status"`
	CheckIn  string           `json:"checkIn"`
	CheckOut string           `json:"checkOut"`
}
