package annotations

import (
	"net/http"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type pendingListResponse struct {
	Items []annotationsdomain.PendingReminder `json:"items"`
	Total int                                 `json:"total"`
}

func (h *Handlers) ListPendingReminders(w http.ResponseWriter, r *http.Request) {
	items, err := h.Feed.ListPending(r.Context())
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "dashboard.pending: aggregate reminders failed", err)
		return
	}
	writeJSON(w, http.StatusOK, pendingListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	kind, err := annotationsdomain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_owner_kind", "unknown owner kind")
		return
	}
	reminderID, err := commonhandler.ParseID(r, "reminder_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	reminder, err := h.Annotations.CompleteReminder(r.Context(), kind, reminderID)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "dashboard.complete: complete reminder failed", err,
			"kind", kind, "reminder_id", reminderID)
		return
	}
	writeJSON(w, http.StatusOK, toReminderResponse(*reminder))
}
