package httpd

import (
	"errors"
	"mime/multipart"
	"net/http"
)

type uploadedFile struct {
	file   multipart.File
	header *multipart.FileHeader
	form   *multipart.Form
}

func (u *uploadedFile) contentType() string {
	if ct := u.header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (u *uploadedFile) Close() {
	_ = u.file.Close()
	if u.form != nil {
		_ = u.form.RemoveAll()
	}
}

// parseUpload reads a multipart body capped at maxUploadSize and opens the
// named file part. Failures are written as 400 or 413.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request, field string) (*uploadedFile, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		writeError(w, http.StatusBadRequest, "Missing file field "+field)
		return nil, false
	}

	return &uploadedFile{file: file, header: header, form: r.MultipartForm}, true
}
