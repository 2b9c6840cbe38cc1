package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CourseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	course, err := h.services.Courses.CreateCourse(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, course)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	course, err := h.services.Courses.GetCourse(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, course)
}

// GetCourseDetail serves the course page: the course, its enrolled students
// and their grades with display bands.
func (h *Handler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.services.Courses.GetCourseDetail(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, detail)
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.services.Courses.ListCourses(r.Context(),
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, courses)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.CourseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	course, err := h.services.Courses.UpdateCourse(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, course)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Courses.DeleteCourse(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) EnrollStudent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.EnrollStudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	enrollment, err := h.services.Enrollments.EnrollStudent(r.Context(), courseID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, enrollment)
}

func (h *Handler) GetCourseSchedules(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	schedules, err := h.services.Courses.GetCourseSchedules(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, schedules)
}

func (h *Handler) GetCourseAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	assignments, err := h.services.Courses.GetCourseAssignments(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, assignments)
}
