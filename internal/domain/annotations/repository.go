package annotations

import (
	"context"
	"time"
)

// Store persists the notes and reminders of a single owner kind.
type Store interface {
	Kind() OwnerKind
	OwnerExists(ctx context.Context, ownerID int64) (bool, error)

	ListNotes(ctx context.Context, ownerID int64) ([]Note, error)
	CreateNote(ctx context.Context, note *Note) error
	UpdateNote(ctx context.Context, id, ownerID int64, content string, at time.Time) (*Note, error)
	DeleteNote(ctx context.Context, id, ownerID int64) (bool, error)

	ListReminders(ctx context.Context, ownerID int64) ([]Reminder, error)
	CreateReminder(ctx context.Context, reminder *Reminder) error
	UpdateReminder(ctx context.Context, id, ownerID int64, patch ReminderPatch, at time.Time) (*Reminder, error)
	DeleteReminder(ctx context.Context, id, ownerID int64) (bool, error)
	CompleteReminder(ctx context.Context, id int64, at time.Time) (*Reminder, error)

	// ListPending returns the reminders that are not completed, with Subject filled.
	ListPending(ctx context.Context) ([]PendingReminder, error)
}
