package httpd

import (
	"net/http"

	"github.com/RubachokBoss/school-service/internal/models"
)

const photoFormField = "photo"

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.services.Students.CreateStudent(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, student)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	student, err := h.services.Students.GetStudent(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 0)

	students, err := h.services.Students.ListStudents(r.Context(), page, limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, students)
}

func (h *Handler) GetStudentEnrollments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	enrollments, err := h.services.Students.GetStudentEnrollments(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, enrollments)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.StudentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	student, err := h.services.Students.UpdateStudent(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Students.DeleteStudent(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) UploadStudentPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	form, ok := h.parseUpload(w, r, photoFormField)
	if !ok {
		return
	}
	defer form.Close()

	student, err := h.services.Students.UploadPhoto(r.Context(), id, &models.PhotoUpload{
		FileName:    form.header.Filename,
		ContentType: form.contentType(),
		Size:        form.header.Size,
		Content:     form.file,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, student)
}
