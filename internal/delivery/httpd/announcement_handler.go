package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req models.AnnouncementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	announcement, err := h.services.Announcements.CreateAnnouncement(r.Context(), UserIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, announcement)
}

func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	announcement, err := h.services.Announcements.GetAnnouncement(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, announcement)
}

// ListAnnouncements shows visible announcements; ?all=true includes hidden ones.
func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.services.Announcements.ListAnnouncements(r.Context(),
		getBoolQueryParam(r, "all", false),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, announcements)
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.AnnouncementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	announcement, err := h.services.Announcements.UpdateAnnouncement(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, announcement)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Announcements.DeleteAnnouncement(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}
