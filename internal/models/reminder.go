package models

import "github.com/shopspring/decimal"

// ReminderStatus represents the payment status of a bill reminder
type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusPaid    ReminderStatus = "paid"
)

// Reminder represents a bill reminder. "Overdue" is derived, never
// stored: a pending reminder whose due date is before today.
type Reminder struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	DueDate string          `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
	Status  ReminderStatus  `json:"status"`
}

// GetID returns the reminder id.
func (r Reminder) GetID() string { return r.ID }

// WithID returns a copy of the reminder with the given id.
func (r Reminder) WithID(id string) Reminder {
	r.ID = id
	return r
}

// ReminderPatch is a partial update for a reminder.
type ReminderPatch struct {
	Title   *string          `json:"title,omitempty"`
	DueDate *string          `json:"dueDate,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	Status  *ReminderStatus  `json:"status,omitempty"`
}

// Apply merges the patch into a copy of the reminder.
func (p ReminderPatch) Apply(r Reminder) Reminder {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.DueDate != nil {
		r.DueDate = *p.DueDate
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}
