package models

const (
	EventEnrollmentCreated = "enrollment.created"
	EventGradeRecorded     = "grade.recorded"
	EventDocumentUploaded  = "document.uploaded"
	EventDocumentDeleted   = "document.deleted"
)

type EnrollmentCreatedEvent struct {
	EnrollmentID int64 `json:"enrollment_id"`
	StudentID    int64 `json:"student_id"`
	CourseID     int64 `json:"course_id"`
	Timestamp    int64 `json:"timestamp"`
}

type GradeRecordedEvent struct {
	GradeID      int64    `json:"grade_id"`
	EnrollmentID int64    `json:"enrollment_id"`
	Score        *float64 `json:"score,omitempty"`
	Band         Band     `json:"band"`
	Timestamp    int64    `json:"timestamp"`
}

type DocumentEvent struct {
	DocumentID int64        `json:"document_id"`
	FileKey    string       `json:"file_key"`
	FileType   DocumentType `json:"file_type"`
	CourseID   *int64       `json:"course_id,omitempty"`
	Timestamp  int64        `json:"timestamp"`
}
