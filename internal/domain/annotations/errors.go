package annotations

import "dealer-app-go/internal/domain/apperr"

var (
	ErrUnknownKind        = apperr.New(apperr.ErrNotFound, "unknown owner kind")
	ErrOwnerNotFound      = apperr.New(apperr.ErrNotFound, "owner not found")
	ErrReferenceNotFound  = apperr.New(apperr.ErrNotFound, "linked record not found")
	ErrNoteNotFound       = apperr.New(apperr.ErrNotFound, "note not found")
	ErrReminderNotFound   = apperr.New(apperr.ErrNotFound, "reminder not found")
	ErrEmptyContent       = apperr.Validation("content is required")
	ErrEmptyTitle         = apperr.Validation("title is required")
	ErrMissingDueAt       = apperr.Validation("due_at is required")
	ErrInvalidPriority    = apperr.Validation("priority must be alta, media or baja")
	ErrDealLinkNotAllowed = apperr.Validation("deal_id is only accepted on client reminders")
	ErrEmptyPatch         = apperr.Validation("no fields to update")
)
