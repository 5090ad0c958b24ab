package annotations

import (
	"net/http"
	"time"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
	"dealer-app-go/internal/transport/httpserver/middleware"
)

type createNoteRequest struct {
	Content  string  `json:"content"`
	Tag      *string `json:"tag"`
	Title    *string `json:"title"`
	Priority *string `json:"priority"`
}

type updateNoteRequest struct {
	Content string `json:"content"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	OwnerID   int64     `json:"owner_id"`
	Content   string    `json:"content"`
	Tag       *string   `json:"tag"`
	Title     *string   `json:"title"`
	Priority  string    `json:"priority"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type noteListResponse struct {
	Items []noteResponse `json:"items"`
}

func (h *Handlers) ListNotes(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}

	notes, err := h.Annotations.ListNotes(r.Context(), kind, ownerID)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "notes.list: list notes failed", err, "kind", kind, "owner_id", ownerID)
		return
	}

	response := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	writeJSON(w, http.StatusOK, noteListResponse{Items: response})
}

func (h *Handlers) CreateNote(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	author := ""
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		author = user.Username
	}

	note, err := h.Annotations.CreateNote(r.Context(), kind, ownerID, annotationsdomain.NoteInput{
		Content:  req.Content,
		Author:   author,
		Tag:      req.Tag,
		Title:    req.Title,
		Priority: priorityPtr(req.Priority),
	})
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "notes.create: create note failed", err, "kind", kind, "owner_id", ownerID)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(*note))
}

func (h *Handlers) UpdateNote(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}
	noteID, err := commonhandler.ParseID(r, "note_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	note, err := h.Annotations.UpdateNote(r.Context(), kind, noteID, ownerID, req.Content)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "notes.update: update note failed", err,
			"kind", kind, "owner_id", ownerID, "note_id", noteID)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(*note))
}

func (h *Handlers) DeleteNote(w http.ResponseWriter, r *http.Request) {
	kind, ownerID, ok := h.ownerPath(w, r)
	if !ok {
		return
	}
	noteID, err := commonhandler.ParseID(r, "note_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Annotations.DeleteNote(r.Context(), kind, noteID, ownerID); err != nil {
		commonhandler.WriteDomainError(w, h.log, "notes.delete: delete note failed", err,
			"kind", kind, "owner_id", ownerID, "note_id", noteID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toNoteResponse(note annotationsdomain.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		Kind:      string(note.Kind),
		OwnerID:   note.OwnerID,
		Content:   note.Content,
		Tag:       note.Tag,
		Title:     note.Title,
		Priority:  string(note.Priority),
		Author:    note.Author,
		CreatedAt: note.CreatedAt,
	}
}
