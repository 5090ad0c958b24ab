package annotations

import (
	"net/http"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

// ownerPath reads {kind} and {owner_id}. It writes the error response itself
// and reports whether the handler may continue.
func (h *Handlers) ownerPath(w http.ResponseWriter, r *http.Request) (annotationsdomain.OwnerKind, int64, bool) {
	kind, err := annotationsdomain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_owner_kind", "unknown owner kind")
		return "", 0, false
	}
	ownerID, err := commonhandler.ParseID(r, "owner_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return "", 0, false
	}
	return kind, ownerID, true
}

func priorityPtr(value *string) *annotationsdomain.Priority {
	if value == nil {
		return nil
	}
	priority := annotationsdomain.Priority(*value)
	return &priority
}
