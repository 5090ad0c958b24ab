package annotations

import (
	"net/http"
	"time"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
)

type createReminderRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
	Priority    *string `json:"priority"`
	DueAt       string  `json:"due_at"`
	DealID      *int64  `json:"deal_id"`
}

type updateReminderRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tag         *string `json:"tag"`
	Priority    *string `json:"priority"`
	DueAt       *string `json:"due_at"`
	Completed   *bool   `json:"completed"`
}

type reminderResponse struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Tag         *string   `json:"tag"`
	Priority    string    `json:"priority"`
	DueAt       time.Time `json:"due_at"`
	Completed   bool      `json:"completed"`
	DealID      *int64    `json:"deal_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type reminderListResponse struct {
	Items []reminderResponse `json:"items"`
}

func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}

	reminders, err := h.Annotations.ListReminders(r.Context(), kind, ownerID)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "reminders.list: list reminders failed", err, "kind", kind, "owner_id", ownerID)
		return
	}

	response := make([]reminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		response = append(response, toReminderResponse(reminder))
	}
	writeJSON(w, http.StatusOK, reminderListResponse{Items: response})
}

func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}

	var req createReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	dueAt, err := commonhandler.ParseTimestamp(req.DueAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_at")
		return
	}

	reminder, err := h.Annotations.CreateReminder(r.Context(), kind, ownerID, annotationsdomain.ReminderInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Priority:    priorityPtr(req.Priority),
		DueAt:       dueAt,
		DealID:      req.DealID,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "reminders.create: create reminder failed", err, "kind", kind, "owner_id", ownerID)
		return
	}
	writeJSON(w, http.StatusCreated, toReminderResponse(*reminder))
}

func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}
	reminderID, err := commonhandler.ParseID(r, "reminder_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	patch := annotationsdomain.ReminderPatch{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Priority:    priorityPtr(req.Priority),
		Completed:   req.Completed,
	}
	if req.DueAt != nil {
		dueAt, err := commonhandler.ParseTimestamp(*req.DueAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid due_at")
			return
		}
		patch.DueAt = &dueAt
	}

	reminder, err := h.Annotations.UpdateReminder(r.Context(), kind, reminderID, ownerID, patch)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "reminders.update: update reminder failed", err,
			"kind", kind, "owner_id", ownerID, "reminder_id", reminderID)
		return
	}
	writeJSON(w, http.StatusOK, toReminderResponse(*reminder))
}

func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}
	reminderID, err := commonhandler.ParseID(r, "reminder_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Annotations.DeleteReminder(r.Context(), kind, reminderID, ownerID); err != nil {
		commonhandler.WriteDomainError(w, h.log, "reminders.delete: delete reminder failed", err,
			"kind", kind, "owner_id", ownerID, "reminder_id", reminderID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toReminderResponse(reminder annotationsdomain.Reminder) reminderResponse {
	return reminderResponse{
		ID:          reminder.ID,
		Kind:        string(reminder.Kind),
		OwnerID:     reminder.OwnerID,
		Title:       reminder.Title,
		Description: reminder.Description,
		Tag:         reminder.Tag,
		Priority:    string(reminder.Priority),
		DueAt:       reminder.DueAt.UTC(),
		Completed:   reminder.Completed,
		DealID:      reminder.DealID,
		CreatedAt:   reminder.CreatedAt,
		UpdatedAt:   reminder.UpdatedAt,
	}
}
