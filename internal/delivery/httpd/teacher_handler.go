package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req models.TeacherRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teacher, err := h.services.Teachers.CreateTeacher(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, teacher)
}

func (h *Handler) GetTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	teacher, err := h.services.Teachers.GetTeacher(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, teacher)
}

func (h *Handler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.services.Teachers.ListTeachers(r.Context(),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, teachers)
}

func (h *Handler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.TeacherRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	teacher, err := h.services.Teachers.UpdateTeacher(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, teacher)
}

func (h *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Teachers.DeleteTeacher(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}
