// Package attendance classifies attendance records from raw punch times
// and tracks leave quota consumption.
package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/finbook-dev/finbook/internal/dateutil"
	"github.com/finbook-dev/finbook/internal/model"
)

// clockLayout matches the stored 12-hour punch format, e.g. "08:45 AM".
const clockLayout = "03:04 PM"

// Work-day thresholds. A check-in strictly after 08:00 is late; a
// check-out at or after 19:00 earns the tiffin allowance. The boundaries
// are exact: 08:00 on the dot is on time, 19:00 on the dot is eligible.
const (
	lateHour   = 8
	tiffinHour = 19
)

// ParseClock parses a 12-hour punch string into 24-hour (hour, minute).
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Classify derives the status of an attendance record. Off days and
// holidays classify regardless of punches; a standard day without a
// check-in is absent, without a check-out is out-missing. An unparseable
// check-in counts as absent rather than failing the whole record.
func Classify(rec model.AttendanceRecord) model.AttendanceStatus {
	switch rec.Type {
	case model.DayOff:
		return model.StatusWeeklyOff
	case model.DayHoliday:
		return model.StatusHoliday
	}

	if strings.TrimSpace(rec.CheckIn) == "" {
		return model.StatusAbsent
	}
	if strings.TrimSpace(rec.CheckOut) == "" {
		return model.StatusOutMissing
	}

	hour, minute, err := ParseClock(rec.CheckIn)
	if err != nil {
		return model.StatusAbsent
	}
	if hour > lateHour || (hour == lateHour && minute > 0) {
		return model.StatusLate
	}
	return model.StatusOnTime
}

// TiffinEligible reports whether the check-out time qualifies for the
// tiffin allowance. The flag is independent of the day's status.
func TiffinEligible(checkOut string) bool {
	hour, _, err := ParseClock(checkOut)
	if err != nil {
		return false
	}
	return hour >= tiffinHour
}

// QuotaUsed sums the leave days consumed for one type in one "YYYY"
// year. Only approved records count; the record's start date decides
// which year it charges.
func QuotaUsed(records []model.LeaveRecord, typeID model.LeaveType, year string) int {
	used := 0
	for _, rec := range records {
		if rec.Status != model.LeaveApproved {
			continue
		}
		if rec.TypeID != typeID || !dateutil.InYear(rec.StartDate, year) {
			continue
		}
		used += rec.TotalDays
	}
	return used
}

// Remaining returns the unconsumed balance for a quota in a year. A
// negative result means the quota is overdrawn.
func Remaining(quota model.LeaveQuota, records []model.LeaveRecord, year string) int {
	return quota.TotalDaysPerYear - QuotaUsed(records, quota.TypeID, year)
}
