package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
)

var documentColumns = []string{
	"id", "title", "description", "file_key", "file_name", "file_size", "file_type",
	"course_id", "title", "uploaded_by", "uploaded_at",
}

func TestDocumentRepository_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentRepository(db, testLogger)

	mock.ExpectQuery(`FROM documents d`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(documentColumns))

	doc, err := repo.GetByID(testContext(t), 4)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDocumentRepository_GetAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentRepository(db, testLogger)

	uploaded := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	courseID := int64(3)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents`).
		WithArgs(&courseID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY d.uploaded_at DESC`).
		WithArgs(&courseID, 20, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow(1, "Notes", "", "documents/a.pdf", "a.pdf", nil, "lecture", 3, "Algebra", nil, uploaded))

	docs, total, err := repo.GetAll(testContext(t), &courseID, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].FileSize)
	assert.Equal(t, "Algebra", *docs[0].CourseTitle)
	assert.Nil(t, docs[0].UploadedBy)
}

func TestDocumentRepository_Update(t *testing.T) {
	courseID := int64(3)

	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "updated",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "missing row",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: ErrNotFound,
		},
		{
			name: "unknown course",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnError(&pq.Error{Code: "23503", Constraint: "documents_course_id_fkey"})
			},
			wantErr: ErrForeignKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewDocumentRepository(db, testLogger)

			exec := mock.ExpectExec(`UPDATE documents\s+SET title = \$1, description = \$2, file_type = \$3, course_id = \$4\s+WHERE id = \$5`).
				WithArgs("Notes", "v2", "material", courseID, int64(8))
			tt.result(exec)

			err := repo.Update(testContext(t), &models.Document{
				ID:          8,
				Title:       "Notes",
				Description: "v2",
				FileType:    models.DocumentTypeMaterial,
				CourseID:    &courseID,
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
