package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	enrollment, err := h.services.Enrollments.CreateEnrollment(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, enrollment)
}

func (h *Handler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	enrollment, err := h.services.Enrollments.GetEnrollment(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, enrollment)
}

func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.services.Enrollments.ListEnrollments(r.Context(),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, enrollments)
}

func (h *Handler) UpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.EnrollmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	enrollment, err := h.services.Enrollments.UpdateEnrollment(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, enrollment)
}

func (h *Handler) DeleteEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Enrollments.DeleteEnrollment(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) SetEnrollmentGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.SetGradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	grade, err := h.services.Grades.SetEnrollmentGrade(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, grade)
}
