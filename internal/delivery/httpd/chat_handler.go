package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.services.Chat.ListMessages(r.Context(), chi.URLParam(r, "room"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, messages)
}

// PostChatMessage accepts anonymous posts; those are attributed to the
// system account.
func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.services.Chat.PostMessage(r.Context(), chi.URLParam(r, "room"),
		UserIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, message)
}
