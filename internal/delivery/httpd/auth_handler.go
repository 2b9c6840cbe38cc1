package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.services.Auth.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, token)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.services.Auth.GetUser(r.Context(), *userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, user)
}
