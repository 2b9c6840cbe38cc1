package httpd

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/RubachokBoss/school-service/internal/models"
)

const documentFormField = "file"

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseUpload(w, r, documentFormField)
	if !ok {
		return
	}
	defer form.Close()

	courseID, ok := optionalInt64(w, r.FormValue("course_id"), "course_id")
	if !ok {
		return
	}

	document, err := h.services.Documents.UploadDocument(r.Context(), &models.DocumentUploadRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: r.FormValue("description"),
		FileType:    r.FormValue("file_type"),
		CourseID:    courseID,
		FileName:    filepath.Base(form.header.Filename),
		ContentType: form.contentType(),
		Size:        form.header.Size,
		Content:     form.file,
		UploadedBy:  UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeCreated(w, document)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	document, err := h.services.Documents.GetDocument(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, document)
}

// ListDocuments accepts an optional course_id filter.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	courseID, ok := optionalInt64(w, r.URL.Query().Get("course_id"), "course_id")
	if !ok {
		return
	}

	documents, err := h.services.Documents.ListDocuments(r.Context(), courseID,
		getIntQueryParam(r, "page", 1), getIntQueryParam(r, "limit", 0))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, documents)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.DocumentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	document, err := h.services.Documents.UpdateDocument(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, document)
}

func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	file, err := h.services.Documents.OpenDocument(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	defer file.Content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file.Document.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": file.Document.FileName}))
	if file.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file.Content); err != nil {
		h.logger.Warn().Err(err).Int64("document_id", id).Msg("Document download interrupted")
	}
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.services.Documents.DeleteDocument(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeNoContent(w)
}

func optionalInt64(w http.ResponseWriter, raw, name string) (*int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", name))
		return nil, false
	}
	return &value, true
}
