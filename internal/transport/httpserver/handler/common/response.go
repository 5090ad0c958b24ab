package common

import (
	"encoding/json"
	"errors"
	"net/http"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
	"dealer-app-go/internal/domain/apperr"
	depositsdomain "dealer-app-go/internal/domain/deposits"
	"dealer-app-go/pkg/logger"
)

// ErrorResponse is the body of every non-2xx reply: {"error":{code,message}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorCodes refines the generic kind code; the first match wins.
var errorCodes = []struct {
	err  error
	code string
}{
	{depositsdomain.ErrActiveDepositExists, "active_deposit_exists"},
	{depositsdomain.ErrDepositNotFound, "deposit_not_found"},
	{depositsdomain.ErrReferenceNotFound, "reference_not_found"},
	{annotationsdomain.ErrUnknownKind, "unknown_owner_kind"},
	{annotationsdomain.ErrOwnerNotFound, "owner_not_found"},
	{annotationsdomain.ErrReferenceNotFound, "reference_not_found"},
	{annotationsdomain.ErrNoteNotFound, "note_not_found"},
	{annotationsdomain.ErrReminderNotFound, "reminder_not_found"},
}

// classify maps an error onto a status and code. ok is false for errors
// that are not one of the domain kinds.
func classify(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperr.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error", false
	}

	for _, known := range errorCodes {
		if errors.Is(err, known.err) {
			return status, known.code, true
		}
	}
	return status, code, true
}

// WriteDomainError replies with the status of err's kind. Client errors are
// logged as business errors; anything else is internal and its message is
// not exposed.
func WriteDomainError(w http.ResponseWriter, log logger.Logger, op string, err error, args ...any) {
	status, code, ok := classify(err)
	if !ok {
		log.InternalError(op, err, args...)
		WriteError(w, status, code, "internal error")
		return
	}
	log.BusinessError(op, err, args...)
	WriteError(w, status, code, err.Error())
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// DecodeJSON rejects unknown fields so that typos in PATCH bodies are not
// silently ignored.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
