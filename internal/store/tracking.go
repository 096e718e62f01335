package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/attendance"
	"github.com/finbook-dev/finbook/internal/dateutil"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/payroll"
)

// Reminders returns a copy of the reminder collection.
func (s *Store) Reminders() []model.Reminder {
	out := make([]model.Reminder, len(s.doc.Reminders))
	copy(out, s.doc.Reminders)
	return out
}

// AddReminder validates and appends a reminder.
func (s *Store) AddReminder(title, date string, priority model.ReminderPriority) (model.Reminder, error) {
	if title == "" {
		return model.Reminder{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if err := validateDate(date); err != nil {
		return model.Reminder{}, err
	}
	switch priority {
	case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
	default:
		return model.Reminder{}, fmt.Errorf("%w: unknown priority %q", ErrInvalid, priority)
	}
	rem := model.Reminder{ID: newID(), Title: title, Date: date, Priority: priority}
	s.doc.Reminders = append(s.doc.Reminders, rem)
	s.notify()
	return rem, nil
}

// ToggleReminder flips a reminder's completed flag.
func (s *Store) ToggleReminder(id string) error {
	for i := range s.doc.Reminders {
		if s.doc.Reminders[i].ID == id {
			s.doc.Reminders[i].Completed = !s.doc.Reminders[i].Completed
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
}

// DeleteReminder removes a reminder.
func (s *Store) DeleteReminder(id string) error {
	for i := range s.doc.Reminders {
		if s.doc.Reminders[i].ID == id {
			s.doc.Reminders = append(s.doc.Reminders[:i], s.doc.Reminders[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
}

// Holidays returns a copy of the holiday collection.
func (s *Store) Holidays() []model.Holiday {
	out := make([]model.Holiday, len(s.doc.Holidays))
	copy(out, s.doc.Holidays)
	return out
}

// AddHoliday validates and appends a holiday.
func (s *Store) AddHoliday(name, date string) (model.Holiday, error) {
	if name == "" {
		return model.Holiday{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if err := validateDate(date); err != nil {
		return model.Holiday{}, err
	}
	h := model.Holiday{ID: newID(), Name: name, Date: date}
	s.doc.Holidays = append(s.doc.Holidays, h)
	s.notify()
	return h, nil
}

// DeleteHoliday removes a holiday.
func (s *Store) DeleteHoliday(id string) error {
	for i := range s.doc.Holidays {
		if s.doc.Holidays[i].ID == id {
			s.doc.Holidays = append(s.doc.Holidays[:i], s.doc.Holidays[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("holiday %s: %w", id, ErrNotFound)
}

// LeaveRecords returns a copy of the leave collection.
func (s *Store) LeaveRecords() []model.LeaveRecord {
	out := make([]model.LeaveRecord, len(s.doc.LeaveRecords))
	copy(out, s.doc.LeaveRecords)
	return out
}

// LeaveQuotas returns a copy of the quota collection.
func (s *Store) LeaveQuotas() []model.LeaveQuota {
	out := make([]model.LeaveQuota, len(s.doc.LeaveQuotas))
	copy(out, s.doc.LeaveQuotas)
	return out
}

// LeaveParams is the edit-boundary input for a leave application.
type LeaveParams struct {
	TypeID    model.LeaveType
	StartDate string
	EndDate   string
	Reason    string
	AppliedOn string
}

// AddLeaveRecord validates a leave application, derives its inclusive
// day count, and stores it as Pending.
func (s *Store) AddLeaveRecord(p LeaveParams) (model.LeaveRecord, error) {
	switch p.TypeID {
	case model.LeaveCasual, model.LeaveMedical, model.LeaveAnnual:
	default:
		return model.LeaveRecord{}, fmt.Errorf("%w: unknown leave type %q", ErrInvalid, p.TypeID)
	}
	days, err := dateutil.CountDays(p.StartDate, p.EndDate)
	if err != nil {
		return model.LeaveRecord{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if p.AppliedOn != "" {
		if err := validateDate(p.AppliedOn); err != nil {
			return model.LeaveRecord{}, err
		}
	}
	rec := model.LeaveRecord{
		ID:        newID(),
		TypeID:    p.TypeID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		TotalDays: days,
		Reason:    p.Reason,
		Status:    model.LeavePending,
		AppliedOn: p.AppliedOn,
	}
	s.doc.LeaveRecords = append(s.doc.LeaveRecords, rec)
	s.notify()
	return rec, nil
}

// SetLeaveStatus moves a leave application through its approval states.
func (s *Store) SetLeaveStatus(id string, status model.LeaveStatus) error {
	switch status {
	case model.LeaveApproved, model.LeavePending, model.LeaveRejected:
	default:
		return fmt.Errorf("%w: unknown leave status %q", ErrInvalid, status)
	}
	for i := range s.doc.LeaveRecords {
		if s.doc.LeaveRecords[i].ID == id {
			s.doc.LeaveRecords[i].Status = status
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("leave record %s: %w", id, ErrNotFound)
}

// DeleteLeaveRecord removes a leave application.
func (s *Store) DeleteLeaveRecord(id string) error {
	for i := range s.doc.LeaveRecords {
		if s.doc.LeaveRecords[i].ID == id {
			s.doc.LeaveRecords = append(s.doc.LeaveRecords[:i], s.doc.LeaveRecords[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("leave record %s: %w", id, ErrNotFound)
}

// SetLeaveQuota replaces the yearly cap for one leave type, adding the
// quota row if it does not exist yet.
func (s *Store) SetLeaveQuota(typeID model.LeaveType, days int) error {
	if days < 0 {
		return fmt.Errorf("%w: quota must not be negative", ErrInvalid)
	}
	for i := range s.doc.LeaveQuotas {
		if s.doc.LeaveQuotas[i].TypeID == typeID {
			s.doc.LeaveQuotas[i].TotalDaysPerYear = days
			s.notify()
			return nil
		}
	}
	s.doc.LeaveQuotas = append(s.doc.LeaveQuotas, model.LeaveQuota{TypeID: typeID, TotalDaysPerYear: days})
	s.notify()
	return nil
}

// AttendanceRecords returns a copy of the attendance collection.
func (s *Store) AttendanceRecords() []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, len(s.doc.AttendanceRecords))
	copy(out, s.doc.AttendanceRecords)
	return out
}

// AttendanceParams is the edit-boundary input for one day of attendance.
type AttendanceParams struct {
	Date     string
	Type     model.AttendanceType
	CheckIn  string
	CheckOut string
}

// AddAttendanceRecord validates the input, derives the weekday and
// status, and appends the record.
func (s *Store) AddAttendanceRecord(p AttendanceParams) (model.AttendanceRecord, error) {
	day, err := dateutil.Weekday(p.Date)
	if err != nil {
		return model.AttendanceRecord{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch p.Type {
	case "":
		p.Type = model.DayStandard
	case model.DayStandard, model.DayOff, model.DayHoliday:
	default:
		return model.AttendanceRecord{}, fmt.Errorf("%w: unknown attendance type %q", ErrInvalid, p.Type)
	}
	rec := model.AttendanceRecord{
		ID:       newID(),
		Date:     p.Date,
		Day:      day,
		Type:     p.Type,
		CheckIn:  p.CheckIn,
		CheckOut: p.CheckOut,
	}
	rec.Status = attendance.Classify(rec)
	s.doc.AttendanceRecords = append(s.doc.AttendanceRecords, rec)
	s.notify()
	return rec, nil
}

// SetAttendanceRecord replaces a record's punches and re-derives its
// weekday and status.
func (s *Store) SetAttendanceRecord(rec model.AttendanceRecord) error {
	switch rec.Type {
	case model.DayStandard, model.DayOff, model.DayHoliday:
	default:
		return fmt.Errorf("%w: unknown attendance type %q", ErrInvalid, rec.Type)
	}
	day, err := dateutil.Weekday(rec.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	rec.Day = day
	rec.Status = attendance.Classify(rec)
	for i := range s.doc.AttendanceRecords {
		if s.doc.AttendanceRecords[i].ID == rec.ID {
			s.doc.AttendanceRecords[i] = rec
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("attendance record %s: %w", rec.ID, ErrNotFound)
}

// DeleteAttendanceRecord removes an attendance record.
func (s *Store) DeleteAttendanceRecord(id string) error {
	for i := range s.doc.AttendanceRecords {
		if s.doc.AttendanceRecords[i].ID == id {
			s.doc.AttendanceRecords = append(s.doc.AttendanceRecords[:i], s.doc.AttendanceRecords[i+1:]...)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("attendance record %s: %w", id, ErrNotFound)
}

// SalaryHistory returns the salary chain in chronological order with
// derived fields current.
func (s *Store) SalaryHistory() []model.SalaryEntry {
	return payroll.Rebuild(s.doc.SalaryHistory)
}

// SalaryParams is the edit-boundary input for a salary history entry.
// Total is only meaningful for the first (anchor) entry of the chain;
// later entries derive it.
type SalaryParams struct {
	Year            int
	IncreasePercent decimal.Decimal
	BaseDeduction   decimal.Decimal
	Total           decimal.Decimal
}

// AddSalaryEntry appends an entry at the end of its year and rebuilds
// the chain.
func (s *Store) AddSalaryEntry(p SalaryParams) (model.SalaryEntry, error) {
	if p.Year < 1900 || p.Year > 3000 {
		return model.SalaryEntry{}, fmt.Errorf("%w: implausible year %d", ErrInvalid, p.Year)
	}
	if p.IncreasePercent.IsNegative() || p.BaseDeduction.IsNegative() || p.Total.IsNegative() {
		return model.SalaryEntry{}, fmt.Errorf("%w: salary figures must not be negative", ErrInvalid)
	}
	entry := model.SalaryEntry{
		ID:              newID(),
		Year:            p.Year,
		IncreasePercent: p.IncreasePercent,
		BaseDeduction:   p.BaseDeduction,
		Total:           p.Total,
	}
	s.doc.SalaryHistory = payroll.Insert(s.doc.SalaryHistory, entry)
	s.notify()
	for _, e := range s.doc.SalaryHistory {
		if e.ID == entry.ID {
			return e, nil
		}
	}
	return entry, nil
}

// SetSalaryEntry replaces an entry's inputs and rebuilds the chain.
func (s *Store) SetSalaryEntry(entry model.SalaryEntry) error {
	for i := range s.doc.SalaryHistory {
		if s.doc.SalaryHistory[i].ID == entry.ID {
			s.doc.SalaryHistory[i] = entry
			s.doc.SalaryHistory = payroll.Rebuild(s.doc.SalaryHistory)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("salary entry %s: %w", entry.ID, ErrNotFound)
}

// DeleteSalaryEntry removes an entry and rebuilds the chain across the
// gap.
func (s *Store) DeleteSalaryEntry(id string) error {
	for i := range s.doc.SalaryHistory {
		if s.doc.SalaryHistory[i].ID == id {
			s.doc.SalaryHistory = append(s.doc.SalaryHistory[:i], s.doc.SalaryHistory[i+1:]...)
			s.doc.SalaryHistory = payroll.Rebuild(s.doc.SalaryHistory)
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("salary entry %s: %w", id, ErrNotFound)
}
