package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

func uploadRequest(body string, size int64) *models.DocumentUploadRequest {
	return &models.DocumentUploadRequest{
		Title:      "Syllabus",
		FileName:   "syllabus.pdf",
		FileType:   "lecture",
		Content:    strings.NewReader(body),
		Size:       size,
		UploadedBy: ptr(int64(3)),
	}
}

func TestDocumentService_Upload(t *testing.T) {
	docs := newFakeDocumentRepo()
	storage := newFakeStorage()
	publisher := &fakePublisher{}
	svc := NewDocumentService(docs, storage, publisher, NewValidator(), testLogger)

	doc, err := svc.UploadDocument(context.Background(), uploadRequest(strings.Repeat("x", 2048), 2048))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.FileKey, "documents/"))
	assert.True(t, strings.HasSuffix(doc.FileKey, ".pdf"))
	assert.Equal(t, "2.0 KB", doc.SizeDisplay)
	assert.Equal(t, "📕", doc.Icon)
	assert.Equal(t, models.DocumentTypeLecture, doc.FileType)
	assert.Equal(t, int64(3), *doc.UploadedBy)
	assert.Contains(t, storage.objects, doc.FileKey)
	assert.Equal(t, []string{models.EventDocumentUploaded}, publisher.keys())
}

func TestDocumentService_UploadUnknownSizeUsesStorage(t *testing.T) {
	svc := NewDocumentService(newFakeDocumentRepo(), newFakeStorage(), &fakePublisher{}, NewValidator(), testLogger)

	req := uploadRequest("hello", -1)
	req.FileType = ""
	doc, err := svc.UploadDocument(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "5 B", doc.SizeDisplay)
	assert.Equal(t, models.DocumentTypeOther, doc.FileType)
}

func TestDocumentService_SizeFallback(t *testing.T) {
	docs := newFakeDocumentRepo()
	storage := newFakeStorage()
	storage.statErr = errors.New("storage unreachable")
	svc := NewDocumentService(docs, storage, &fakePublisher{}, NewValidator(), testLogger)

	require.NoError(t, docs.Create(context.Background(), &models.Document{FileKey: "documents/a.zip", FileName: "a.zip"}))

	doc, err := svc.GetDocument(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, doc.FileSize)
	assert.Equal(t, models.UnknownFileSize, doc.SizeDisplay)
	assert.Equal(t, "📦", doc.Icon)
}

func TestDocumentService_CreateFailureRemovesObject(t *testing.T) {
	docs := newFakeDocumentRepo()
	docs.createErr = repository.ErrForeignKey
	storage := newFakeStorage()
	svc := NewDocumentService(docs, storage, &fakePublisher{}, NewValidator(), testLogger)

	req := uploadRequest("data", 4)
	req.CourseID = ptr(int64(99))
	_, err := svc.UploadDocument(context.Background(), req)

	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Empty(t, storage.objects)
}

func TestDocumentService_DeleteIgnoresStorageFailure(t *testing.T) {
	docs := newFakeDocumentRepo()
	storage := newFakeStorage()
	publisher := &fakePublisher{}
	svc := NewDocumentService(docs, storage, publisher, NewValidator(), testLogger)
	ctx := context.Background()

	doc, err := svc.UploadDocument(ctx, uploadRequest("data", 4))
	require.NoError(t, err)

	storage.deleteErr = errors.New("storage unreachable")
	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))

	assert.Empty(t, docs.documents)
	assert.Equal(t, []string{models.EventDocumentUploaded, models.EventDocumentDeleted}, publisher.keys())
	assert.ErrorIs(t, svc.DeleteDocument(ctx, doc.ID), ErrDocumentNotFound)
}

func TestDocumentService_Open(t *testing.T) {
	docs := newFakeDocumentRepo()
	storage := newFakeStorage()
	svc := NewDocumentService(docs, storage, &fakePublisher{}, NewValidator(), testLogger)
	ctx := context.Background()

	doc, err := svc.UploadDocument(ctx, uploadRequest("payload", 7))
	require.NoError(t, err)

	file, err := svc.OpenDocument(ctx, doc.ID)
	require.NoError(t, err)
	defer file.Content.Close()

	data, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int64(7), file.Size)

	delete(storage.objects, doc.FileKey)
	_, err = svc.OpenDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDocumentService_Update(t *testing.T) {
	docs := newFakeDocumentRepo()
	svc := NewDocumentService(docs, newFakeStorage(), &fakePublisher{}, NewValidator(), testLogger)
	ctx := context.Background()

	uploaded, err := svc.UploadDocument(ctx, uploadRequest("pdf", 3))
	require.NoError(t, err)

	updated, err := svc.UpdateDocument(ctx, uploaded.ID, &models.DocumentUpdateRequest{
		Title:       " Revised syllabus ",
		Description: "Second edition",
		CourseID:    ptr(int64(4)),
	})
	require.NoError(t, err)

	assert.Equal(t, "Revised syllabus", updated.Title)
	assert.Equal(t, "Second edition", updated.Description)
	assert.Equal(t, models.DocumentTypeOther, updated.FileType)
	assert.Equal(t, int64(4), *updated.CourseID)
	assert.Equal(t, uploaded.UploadedAt, updated.UploadedAt)
	assert.Equal(t, uploaded.FileKey, updated.FileKey)
	assert.Equal(t, uploaded.FileName, updated.FileName)
}

func TestDocumentService_UpdateErrors(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		req       *models.DocumentUpdateRequest
		updateErr error
		want      error
	}{
		{name: "missing document", id: 99, req: &models.DocumentUpdateRequest{Title: "A"}, want: ErrDocumentNotFound},
		{name: "unknown course", id: 1, req: &models.DocumentUpdateRequest{Title: "A", CourseID: ptr(int64(7))}, updateErr: repository.ErrForeignKey, want: ErrCourseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := newFakeDocumentRepo()
			svc := NewDocumentService(docs, newFakeStorage(), &fakePublisher{}, NewValidator(), testLogger)
			_, err := svc.UploadDocument(context.Background(), uploadRequest("pdf", 3))
			require.NoError(t, err)
			docs.updateErr = tt.updateErr

			_, err = svc.UpdateDocument(context.Background(), tt.id, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("bad file type", func(t *testing.T) {
		svc := NewDocumentService(newFakeDocumentRepo(), newFakeStorage(), &fakePublisher{}, NewValidator(), testLogger)

		_, err := svc.UpdateDocument(context.Background(), 1, &models.DocumentUpdateRequest{Title: "A", FileType: "video"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "file_type", verr.Fields[0].Field)
	})
}
