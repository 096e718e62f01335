package model

// ReminderPriority orders reminders on the dashboard.
type ReminderPriority string

const (
	PriorityHigh   ReminderPriority = "high"
	PriorityMedium ReminderPriority = "medium"
	PriorityLow    ReminderPriority = "low"
)

// Reminder is a free-standing dated note with no linked transaction.
type Reminder struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Priority  ReminderPriority `json:"priority"`
	Completed bool             `json:"completed"`
}

// Holiday marks a calendar date as a public holiday.
type Holiday struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}
