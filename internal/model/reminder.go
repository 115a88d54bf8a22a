package model

import "time"

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderDueSoon   ReminderStatus = "due_soon"
	ReminderOverdue   ReminderStatus = "overdue"
	ReminderCompleted ReminderStatus = "completed"
)

// DueSoonWindow is how far ahead of now a reminder counts as due soon.
const DueSoonWindow = 24 * time.Hour

var reminderStatusDisplay = map[ReminderStatus]string{
	ReminderPending:   "Pending",
	ReminderDueSoon:   "Due Soon",
	ReminderOverdue:   "Overdue",
	ReminderCompleted: "Completed",
}

// Display returns the human-readable label of the status.
func (s ReminderStatus) Display() string {
	return reminderStatusDisplay[s]
}

// Valid reports whether s is one of the known statuses.
func (s ReminderStatus) Valid() bool {
	_, ok := reminderStatusDisplay[s]
	return ok
}

// Automatic reports whether the status is derived from the due time.
// Completed reminders are never recomputed.
func (s ReminderStatus) Automatic() bool {
	return s == ReminderPending || s == ReminderDueSoon
}

// ComputeReminderStatus maps a due time to overdue, due_soon or pending
// relative to now. The due-soon window is inclusive at both ends.
func ComputeReminderStatus(due, now time.Time) ReminderStatus {
	switch {
	case due.Before(now):
		return ReminderOverdue
	case !due.After(now.Add(DueSoonWindow)):
		return ReminderDueSoon
	default:
		return ReminderPending
	}
}

// Reminder is a dated to-do attached to a project.
type Reminder struct {
	ID               string         `json:"id"`
	ProjectID        string         `json:"project"`
	ProjectName      string         `json:"project_name"`
	Title            string         `json:"title"`
	ReminderDatetime time.Time      `json:"reminder_datetime"`
	Status           ReminderStatus `json:"status"`
	CreatedBy        string         `json:"created_by"`
	CreatedByName    string         `json:"created_by_name"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ProjectedStatus returns the status the reminder has at now, without mutating it.
func (r Reminder) ProjectedStatus(now time.Time) ReminderStatus {
	if !r.Status.Automatic() {
		return r.Status
	}
	return ComputeReminderStatus(r.ReminderDatetime, now)
}
