package annotations

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	stores map[OwnerKind]Store
	cache  FeedCache
	now    func() time.Time
}

func NewService(stores []Store, cache FeedCache) *Service {
	if cache == nil {
		cache = noopFeedCache{}
	}
	byKind := make(map[OwnerKind]Store, len(stores))
	for _, store := range stores {
		byKind[store.Kind()] = store
	}
	return &Service{stores: byKind, cache: cache, now: time.Now}
}

func (s *Service) store(kind OwnerKind) (Store, error) {
	store, ok := s.stores[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return store, nil
}

func (s *Service) requireOwner(ctx context.Context, store Store, ownerID int64) error {
	if ownerID <= 0 {
		return ErrOwnerNotFound
	}
	exists, err := store.OwnerExists(ctx, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrOwnerNotFound
	}
	return nil
}

func (s *Service) ListNotes(ctx context.Context, kind OwnerKind, ownerID int64) ([]Note, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	notes, err := store.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		return []Note{}, nil
	}
	return notes, nil
}

func (s *Service) CreateNote(ctx context.Context, kind OwnerKind, ownerID int64, input NoteInput) (*Note, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	priority, err := priorityOrDefault(input.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, store, ownerID); err != nil {
		return nil, err
	}

	note := Note{
		Kind:      kind,
		OwnerID:   ownerID,
		Content:   content,
		Tag:       trimOptional(input.Tag),
		Title:     trimOptional(input.Title),
		Priority:  priority,
		Author:    strings.TrimSpace(input.Author),
		CreatedAt: s.now().UTC(),
	}
	if err := store.CreateNote(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) UpdateNote(ctx context.Context, kind OwnerKind, id, ownerID int64, content string) (*Note, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return store.UpdateNote(ctx, id, ownerID, content, s.now().UTC())
}

func (s *Service) DeleteNote(ctx context.Context, kind OwnerKind, id, ownerID int64) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	deleted, err := store.DeleteNote(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

func (s *Service) ListReminders(ctx context.Context, kind OwnerKind, ownerID int64) ([]Reminder, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	reminders, err := store.ListReminders(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		return []Reminder{}, nil
	}
	return reminders, nil
}

func (s *Service) CreateReminder(ctx context.Context, kind OwnerKind, ownerID int64, input ReminderInput) (*Reminder, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if input.DueAt.IsZero() {
		return nil, ErrMissingDueAt
	}
	priority, err := priorityOrDefault(input.Priority)
	if err != nil {
		return nil, err
	}
	if input.DealID != nil && kind != KindClient {
		return nil, ErrDealLinkNotAllowed
	}
	if err := s.requireOwner(ctx, store, ownerID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	reminder := Reminder{
		Kind:        kind,
		OwnerID:     ownerID,
		Title:       title,
		Description: trimOptional(input.Description),
		Tag:         trimOptional(input.Tag),
		Priority:    priority,
		DueAt:       input.DueAt.UTC(),
		DealID:      input.DealID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.CreateReminder(ctx, &reminder); err != nil {
		return nil, err
	}
	s.cache.InvalidatePending(ctx)
	return &reminder, nil
}

func (s *Service) UpdateReminder(ctx context.Context, kind OwnerKind, id, ownerID int64, patch ReminderPatch) (*Reminder, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return nil, ErrEmptyPatch
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		patch.Title = &title
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if patch.DueAt != nil {
		if patch.DueAt.IsZero() {
			return nil, ErrMissingDueAt
		}
		due := patch.DueAt.UTC()
		patch.DueAt = &due
	}

	reminder, err := store.UpdateReminder(ctx, id, ownerID, patch, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePending(ctx)
	return reminder, nil
}

func (s *Service) DeleteReminder(ctx context.Context, kind OwnerKind, id, ownerID int64) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	deleted, err := store.DeleteReminder(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReminderNotFound
	}
	s.cache.InvalidatePending(ctx)
	return nil
}

// CompleteReminder marks a reminder as done. Completing it again is a no-op.
func (s *Service) CompleteReminder(ctx context.Context, kind OwnerKind, id int64) (*Reminder, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	reminder, err := store.CompleteReminder(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePending(ctx)
	return reminder, nil
}

func priorityOrDefault(value *Priority) (Priority, error) {
	if value == nil || *value == "" {
		return PriorityMedium, nil
	}
	if !value.Valid() {
		return "", ErrInvalidPriority
	}
	return *value, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
