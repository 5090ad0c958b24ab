package annotations

import "time"

type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "baja"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Note struct {
	ID        int64
	Kind      OwnerKind
	OwnerID   int64
	Content   string
	Tag       *string
	Title     *string
	Priority  Priority
	Author    string
	CreatedAt time.Time
}

type Reminder struct {
	ID          int64
	Kind        OwnerKind
	OwnerID     int64
	Title       string
	Description *string
	Tag         *string
	Priority    Priority
	DueAt       time.Time
	Completed   bool
	// DealID links a client reminder to one of the client's deals.
	DealID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoteInput struct {
	Content  string
	Author   string
	Tag      *string
	Title    *string
	Priority *Priority
}

type ReminderInput struct {
	Title       string
	Description *string
	Tag         *string
	Priority    *Priority
	DueAt       time.Time
	DealID      *int64
}

// ReminderPatch carries the fields to change; nil keeps the stored value.
type ReminderPatch struct {
	Title       *string
	Description *string
	Tag         *string
	Priority    *Priority
	DueAt       *time.Time
	Completed   *bool
}

func (p ReminderPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Tag == nil &&
		p.Priority == nil && p.DueAt == nil && p.Completed == nil
}

// PendingReminder is one row of the dashboard feed, normalized across owner kinds.
type PendingReminder struct {
	Kind        OwnerKind `json:"kind"`
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Tag         *string   `json:"tag,omitempty"`
	Priority    Priority  `json:"priority"`
	DueAt       time.Time `json:"due_at"`
	// Subject names the owner row, e.g. a deal number and client name.
	Subject string `json:"subject"`
	Label   string `json:"label"`
}
