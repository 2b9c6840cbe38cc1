package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.AssignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	assignment, err := h.services.Assignments.CreateAssignment(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, assignment)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	assignment, err := h.services.Assignments.GetAssignment(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, assignment)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.services.Assignments.ListAssignments(r.Context(),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, assignments)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.AssignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	assignment, err := h.services.Assignments.UpdateAssignment(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, assignment)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Assignments.DeleteAssignment(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}
