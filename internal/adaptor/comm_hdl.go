package adaptor

import (
	"net/http"

	"marketplace/internal/dto/request"
	"marketplace/internal/usecase"
	"marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommHandler struct {
	service usecase.CommService
	log     *zap.Logger
}

func NewCommHandler(service usecase.CommService, log *zap.Logger) *CommHandler {
	return &CommHandler{
		service: service,
		log:     log.With(zap.String("handler", "comm")),
	}
}

// PostNote handles POST /api/comm/apps/{slug}/notes (participants only)
func (h *CommHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.service.PostNote(r.Context(), userID, chi.URLParam(r, "slug"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "post note")
		return
	}

	utils.ResponseCreated(w, "success", note)
}

// AppThreads handles GET /api/comm/apps/{slug}/threads (participants only)
func (h *CommHandler) AppThreads(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	threads, err := h.service.AppThreads(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, h.log, err, "list threads")
		return
	}

	utils.ResponseSuccess(w, "success", threads)
}

// ThreadNotes handles GET /api/comm/threads/{id}/notes (participants only)
func (h *CommHandler) ThreadNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	threadID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	notes, err := h.service.ThreadNotes(r.Context(), userID, threadID)
	if err != nil {
		handleServiceError(w, h.log, err, "list notes")
		return
	}

	utils.ResponseSuccess(w, "success", notes)
}
