package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.services.Schedules.CreateSchedule(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, schedule)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	schedule, err := h.services.Schedules.GetSchedule(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedule)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.services.Schedules.ListSchedules(r.Context(),
		getBoolQueryParam(r, "active", false),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedules)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.services.Schedules.UpdateSchedule(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Schedules.DeleteSchedule(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}
