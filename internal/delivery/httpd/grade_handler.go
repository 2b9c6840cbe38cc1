package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req models.GradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	grade, err := h.services.Grades.CreateGrade(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, grade)
}

func (h *Handler) GetGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	grade, err := h.services.Grades.GetGrade(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, grade)
}

func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.services.Grades.ListGrades(r.Context(),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, grades)
}

func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.GradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	grade, err := h.services.Grades.UpdateGrade(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, grade)
}

func (h *Handler) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Grades.DeleteGrade(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}
