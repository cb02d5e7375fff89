package notes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes mounts the note endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/notes", h.CreateNote)
	r.Get("/notes", h.ListNotes)
	r.Get("/notes/{id}", h.GetNote)
	r.Get("/notes/{id}/html", h.RenderNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
}

type createNoteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CreateNote handles POST /notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input CreateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	note, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	h.jsonResponse(w, createNoteResponse{
		Message: "Note created successfully",
		ID:      FormatID(note.ID),
		Title:   note.Title,
		Content: note.Content,
	}, http.StatusCreated)
}

// ListNotes handles GET /notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	h.jsonResponse(w, notes, http.StatusOK)
}

// GetNote handles GET /notes/{id}
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}

	h.jsonResponse(w, note, http.StatusOK)
}

// RenderNote handles GET /notes/{id}/html
func (h *Handler) RenderNote(w http.ResponseWriter, r *http.Request) {
	html, err := h.svc.RenderHTML(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "render", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// UpdateNote handles PUT /notes/{id}
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var input UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
		h.fail(w, r, "update", err)
		return
	}

	h.jsonResponse(w, messageResponse{Message: "Note updated successfully"}, http.StatusOK)
}

// DeleteNote handles DELETE /notes/{id}
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete", err)
		return
	}

	h.jsonResponse(w, messageResponse{Message: "Note deleted successfully"}, http.StatusOK)
}

// --- Helper methods ---

// fail maps a service error to a client response. Malformed IDs and missing
// notes share nothing but the error envelope; they are logged apart.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := h.log.With(zap.String("op", op), zap.String("path", r.URL.Path))

	switch {
	case errors.Is(err, ErrInvalidID):
		log.Debug("rejected note request", zap.String("reason", "invalid_id"), zap.Error(err))
		h.jsonError(w, "Invalid note ID format", http.StatusBadRequest)
	case errors.Is(err, ErrNoteNotFound):
		log.Debug("rejected note request", zap.String("reason", "not_found"))
		h.jsonError(w, "Note not found", http.StatusNotFound)
	case errors.Is(err, ErrMissingFields):
		log.Debug("rejected note request", zap.String("reason", "missing_fields"), zap.Error(err))
		h.jsonError(w, "Missing title or content", http.StatusBadRequest)
	case errors.Is(err, ErrEmptyUpdate):
		log.Debug("rejected note request", zap.String("reason", "empty_update"))
		h.jsonError(w, "No data provided for update", http.StatusBadRequest)
	default:
		log.Error("note request failed", zap.Error(err))
		h.jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warn("failed to write response", zap.Error(err))
	}
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.jsonResponse(w, map[string]string{"error": message}, status)
}
