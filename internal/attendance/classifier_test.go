package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
)

func standard(checkIn, checkOut string) model.AttendanceRecord {
	return model.AttendanceRecord{
		Date:     "2026-03-02",
		Type:     model.DayStandard,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

func TestClassify_DayTypes(t *testing.T) {
	off := model.AttendanceRecord{Type: model.DayOff, CheckIn: "09:30 AM"}
	assert.Equal(t, model.StatusWeeklyOff, Classify(off), "punches are irrelevant on an off day")

	holiday := model.AttendanceRecord{Type: model.DayHoliday}
	assert.Equal(t, model.StatusHoliday, Classify(holiday))
}

func TestClassify_MissingPunches(t *testing.T) {
	assert.Equal(t, model.StatusAbsent, Classify(standard("", "")))
	assert.Equal(t, model.StatusAbsent, Classify(standard("  ", "")))
	assert.Equal(t, model.StatusOutMissing, Classify(standard("08:00 AM", "")))
}

func TestClassify_LateBoundary(t *testing.T) {
	tests := []struct {
		checkIn string
		want    model.AttendanceStatus
	}{
		{"07:15 AM", model.StatusOnTime},
		{"08:00 AM", model.StatusOnTime}, // on the dot is on time
		{"08:01 AM", model.StatusLate},   // one minute past is late
		{"09:00 AM", model.StatusLate},
		{"12:30 PM", model.StatusLate},
	}
	for _, tt := range tests {
		got := Classify(standard(tt.checkIn, "05:00 PM"))
		assert.Equal(t, tt.want, got, "check-in %s", tt.checkIn)
	}
}

func TestClassify_BadCheckIn(t *testing.T) {
	assert.Equal(t, model.StatusAbsent, Classify(standard("8 o'clock", "05:00 PM")))
}

func TestTiffinBoundary(t *testing.T) {
	assert.False(t, TiffinEligible("06:59 PM"))
	assert.True(t, TiffinEligible("07:00 PM"), "19:00 exactly is eligible")
	assert.True(t, TiffinEligible("09:45 PM"))
	assert.False(t, TiffinEligible("07:00 AM"), "morning seven is not evening seven")
	assert.False(t, TiffinEligible(""))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("08:45 AM")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 45, m)

	h, _, err = ParseClock("07:00 PM")
	require.NoError(t, err)
	assert.Equal(t, 19, h)

	h, _, err = ParseClock("12:10 AM")
	require.NoError(t, err)
	assert.Equal(t, 0, h, "midnight is hour zero")

	_, _, err = ParseClock("25:00")
	require.Error(t, err)
}

func leaveFixture() []model.LeaveRecord {
	return []model.LeaveRecord{
		{TypeID: model.LeaveCasual, StartDate: "2026-01-05", EndDate: "2026-01-07", TotalDays: 3, Status: model.LeaveApproved},
		{TypeID: model.LeaveCasual, StartDate: "2026-06-01", EndDate: "2026-06-01", TotalDays: 1, Status: model.LeaveApproved},
		{TypeID: model.LeaveCasual, StartDate: "2026-09-01", EndDate: "2026-09-05", TotalDays: 5, Status: model.LeavePending},
		{TypeID: model.LeaveMedical, StartDate: "2026-02-10", EndDate: "2026-02-12", TotalDays: 3, Status: model.LeaveRejected},
		{TypeID: model.LeaveCasual, StartDate: "2025-12-20", EndDate: "2025-12-22", TotalDays: 3, Status: model.LeaveApproved},
	}
}

func TestQuotaUsed(t *testing.T) {
	records := leaveFixture()

	assert.Equal(t, 4, QuotaUsed(records, model.LeaveCasual, "2026"), "pending never counts, prior year never counts")
	assert.Equal(t, 0, QuotaUsed(records, model.LeaveMedical, "2026"), "rejected never counts")
	assert.Equal(t, 3, QuotaUsed(records, model.LeaveCasual, "2025"))
	assert.Equal(t, 0, QuotaUsed(nil, model.LeaveCasual, "2026"))
}

func TestRemaining(t *testing.T) {
	quota := model.LeaveQuota{TypeID: model.LeaveCasual, TotalDaysPerYear: 10}
	assert.Equal(t, 6, Remaining(quota, leaveFixture(), "2026"))
	assert.Equal(t, 10, Remaining(quota, nil, "2026"))
}
