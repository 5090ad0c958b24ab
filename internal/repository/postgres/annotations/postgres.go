package annotations

import (
	"context"
	"fmt"
	"time"

	"dealer-app-go/internal/db"
	"dealer-app-go/internal/domain/apperr"
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	"gorm.io/gorm"
)

type noteRow struct {
	ID        int64
	OwnerID   int64
	Content   string
	Tag       *string
	Title     *string
	Priority  string
	Author    string
	CreatedAt time.Time
}

type reminderRow struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description *string
	Tag         *string
	Priority    string
	DueAt       time.Time
	Completed   bool
	DealID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type pendingRow struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description *string
	Tag         *string
	Priority    string
	DueAt       time.Time
	Subject     string
}

// PostgresStore is the note and reminder store of one owner kind.
type PostgresStore struct {
	db *gorm.DB
	d  Descriptor
}

func NewPostgres(db *gorm.DB, kind annotationsdomain.OwnerKind) (*PostgresStore, error) {
	descriptor, ok := DescriptorFor(kind)
	if !ok {
		return nil, annotationsdomain.ErrUnknownKind
	}
	return &PostgresStore{db: db, d: descriptor}, nil
}

// NewPostgresStores builds one store per owner kind.
func NewPostgresStores(db *gorm.DB) []annotationsdomain.Store {
	stores := make([]annotationsdomain.Store, 0, len(annotationsdomain.Kinds))
	for _, kind := range annotationsdomain.Kinds {
		store, _ := NewPostgres(db, kind)
		stores = append(stores, store)
	}
	return stores
}

func (s *PostgresStore) Kind() annotationsdomain.OwnerKind {
	return s.d.Kind
}

func (s *PostgresStore) op(name string) string {
	return string(s.d.Kind) + "." + name
}

func (s *PostgresStore) OwnerExists(ctx context.Context, ownerID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", s.d.OwnerTable), ownerID).
		Scan(&count).Error
	if err != nil {
		return false, apperr.Storage(s.op("owner_exists"), err)
	}
	return count > 0, nil
}

func (s *PostgresStore) noteColumns() string {
	return fmt.Sprintf("id, %s AS owner_id, content, tag, title, priority, author, created_at", s.d.OwnerColumn)
}

func (s *PostgresStore) ListNotes(ctx context.Context, ownerID int64) ([]annotationsdomain.Note, error) {
	var rows []noteRow
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY created_at DESC, id DESC",
		s.noteColumns(), s.d.NotesTable, s.d.OwnerColumn)
	if err := s.db.WithContext(ctx).Raw(query, ownerID).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(s.op("list_notes"), err)
	}

	notes := make([]annotationsdomain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, s.toNote(row))
	}
	return notes, nil
}

func (s *PostgresStore) CreateNote(ctx context.Context, note *annotationsdomain.Note) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, content, tag, title, priority, author, created_at) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id",
		s.d.NotesTable, s.d.OwnerColumn,
	)
	var id int64
	err := s.db.WithContext(ctx).
		Raw(query, note.OwnerID, note.Content, note.Tag, note.Title, string(note.Priority), note.Author, note.CreatedAt).
		Scan(&id).Error
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return annotationsdomain.ErrOwnerNotFound
		}
		return apperr.Storage(s.op("create_note"), err)
	}
	note.ID = id
	return nil
}

func (s *PostgresStore) UpdateNote(ctx context.Context, id, ownerID int64, content string, at time.Time) (*annotationsdomain.Note, error) {
	query := fmt.Sprintf("UPDATE %s SET content = ?, created_at = ? WHERE id = ? AND %s = ?",
		s.d.NotesTable, s.d.OwnerColumn)
	result := s.db.WithContext(ctx).Exec(query, content, at, id, ownerID)
	if result.Error != nil {
		return nil, apperr.Storage(s.op("update_note"), result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, annotationsdomain.ErrNoteNotFound
	}
	return s.getNote(ctx, id)
}

func (s *PostgresStore) getNote(ctx context.Context, id int64) (*annotationsdomain.Note, error) {
	var rows []noteRow
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", s.noteColumns(), s.d.NotesTable)
	if err := s.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(s.op("get_note"), err)
	}
	if len(rows) == 0 {
		return nil, annotationsdomain.ErrNoteNotFound
	}
	note := s.toNote(rows[0])
	return &note, nil
}

func (s *PostgresStore) DeleteNote(ctx context.Context, id, ownerID int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND %s = ?", s.d.NotesTable, s.d.OwnerColumn)
	result := s.db.WithContext(ctx).Exec(query, id, ownerID)
	if result.Error != nil {
		return false, apperr.Storage(s.op("delete_note"), result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *PostgresStore) reminderColumns() string {
	deal := "NULL"
	if s.d.DealColumn != "" {
		deal = s.d.DealColumn
	}
	return fmt.Sprintf(
		"id, %s AS owner_id, title, description, tag, priority, %s AS due_at, completed, %s AS deal_id, created_at, updated_at",
		s.d.OwnerColumn, s.d.DueColumn, deal,
	)
}

func (s *PostgresStore) ListReminders(ctx context.Context, ownerID int64) ([]annotationsdomain.Reminder, error) {
	var rows []reminderRow
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY %s ASC, id ASC",
		s.reminderColumns(), s.d.RemindersTable, s.d.OwnerColumn, s.d.DueColumn)
	if err := s.db.WithContext(ctx).Raw(query, ownerID).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(s.op("list_reminders"), err)
	}

	reminders := make([]annotationsdomain.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, s.toReminder(row))
	}
	return reminders, nil
}

func (s *PostgresStore) CreateReminder(ctx context.Context, reminder *annotationsdomain.Reminder) error {
	columns := fmt.Sprintf("%s, title, description, tag, priority, %s, completed, created_at, updated_at",
		s.d.OwnerColumn, s.d.DueColumn)
	placeholders := "?, ?, ?, ?, ?, ?, ?, ?, ?"
	args := []interface{}{
		reminder.OwnerID, reminder.Title, reminder.Description, reminder.Tag, string(reminder.Priority),
		reminder.DueAt, reminder.Completed, reminder.CreatedAt, reminder.UpdatedAt,
	}
	if s.d.DealColumn != "" {
		columns += ", " + s.d.DealColumn
		placeholders += ", ?"
		args = append(args, reminder.DealID)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", s.d.RemindersTable, columns, placeholders)
	var id int64
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&id).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			if reminder.DealID != nil {
				return annotationsdomain.ErrReferenceNotFound
			}
			return annotationsdomain.ErrOwnerNotFound
		}
		return apperr.Storage(s.op("create_reminder"), err)
	}
	reminder.ID = id
	return nil
}

func (s *PostgresStore) UpdateReminder(ctx context.Context, id, ownerID int64, patch annotationsdomain.ReminderPatch, at time.Time) (*annotationsdomain.Reminder, error) {
	var priority *string
	if patch.Priority != nil {
		value := string(*patch.Priority)
		priority = &value
	}

	query := fmt.Sprintf(`UPDATE %[1]s SET
		title = COALESCE(?, title),
		description = COALESCE(?, description),
		tag = COALESCE(?, tag),
		priority = COALESCE(?, priority),
		%[2]s = COALESCE(?, %[2]s),
		completed = COALESCE(?, completed),
		updated_at = ?
		WHERE id = ? AND %[3]s = ?`,
		s.d.RemindersTable, s.d.DueColumn, s.d.OwnerColumn)
	result := s.db.WithContext(ctx).Exec(query,
		patch.Title, patch.Description, patch.Tag, priority, patch.DueAt, patch.Completed, at, id, ownerID)
	if result.Error != nil {
		return nil, apperr.Storage(s.op("update_reminder"), result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, annotationsdomain.ErrReminderNotFound
	}
	return s.getReminder(ctx, id)
}

func (s *PostgresStore) DeleteReminder(ctx context.Context, id, ownerID int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND %s = ?", s.d.RemindersTable, s.d.OwnerColumn)
	result := s.db.WithContext(ctx).Exec(query, id, ownerID)
	if result.Error != nil {
		return false, apperr.Storage(s.op("delete_reminder"), result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *PostgresStore) CompleteReminder(ctx context.Context, id int64, at time.Time) (*annotationsdomain.Reminder, error) {
	query := fmt.Sprintf("UPDATE %s SET completed = ?, updated_at = ? WHERE id = ?", s.d.RemindersTable)
	result := s.db.WithContext(ctx).Exec(query, true, at, id)
	if result.Error != nil {
		return nil, apperr.Storage(s.op("complete_reminder"), result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, annotationsdomain.ErrReminderNotFound
	}
	return s.getReminder(ctx, id)
}

func (s *PostgresStore) getReminder(ctx context.Context, id int64) (*annotationsdomain.Reminder, error) {
	var rows []reminderRow
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", s.reminderColumns(), s.d.RemindersTable)
	if err := s.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(s.op("get_reminder"), err)
	}
	if len(rows) == 0 {
		return nil, annotationsdomain.ErrReminderNotFound
	}
	reminder := s.toReminder(rows[0])
	return &reminder, nil
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]annotationsdomain.PendingReminder, error) {
	query := fmt.Sprintf(`SELECT r.id, r.%[1]s AS owner_id, r.title, r.description, r.tag, r.priority,
		r.%[2]s AS due_at, %[3]s AS subject
		FROM %[4]s r
		LEFT JOIN %[5]s o ON o.id = r.%[1]s
		%[6]s
		WHERE r.completed = ?
		ORDER BY r.%[2]s ASC, r.id ASC`,
		s.d.OwnerColumn, s.d.DueColumn, s.d.SubjectExpr, s.d.RemindersTable, s.d.OwnerTable, s.d.SubjectJoins)

	var rows []pendingRow
	if err := s.db.WithContext(ctx).Raw(query, false).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(s.op("list_pending"), err)
	}

	items := make([]annotationsdomain.PendingReminder, 0, len(rows))
	for _, row := range rows {
		items = append(items, annotationsdomain.PendingReminder{
			Kind:        s.d.Kind,
			ID:          row.ID,
			OwnerID:     row.OwnerID,
			Title:       row.Title,
			Description: row.Description,
			Tag:         row.Tag,
			Priority:    annotationsdomain.Priority(row.Priority),
			DueAt:       row.DueAt,
			Subject:     row.Subject,
		})
	}
	return items, nil
}

func (s *PostgresStore) toNote(row noteRow) annotationsdomain.Note {
	return annotationsdomain.Note{
		ID:        row.ID,
		Kind:      s.d.Kind,
		OwnerID:   row.OwnerID,
		Content:   row.Content,
		Tag:       row.Tag,
		Title:     row.Title,
		Priority:  annotationsdomain.Priority(row.Priority),
		Author:    row.Author,
		CreatedAt: row.CreatedAt,
	}
}

func (s *PostgresStore) toReminder(row reminderRow) annotationsdomain.Reminder {
	return annotationsdomain.Reminder{
		ID:          row.ID,
		Kind:        s.d.Kind,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		Tag:         row.Tag,
		Priority:    annotationsdomain.Priority(row.Priority),
		DueAt:       row.DueAt,
		Completed:   row.Completed,
		DealID:      row.DealID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
