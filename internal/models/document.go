package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type DocumentType string

const (
	DocumentTypeLecture    DocumentType = "lecture"
	DocumentTypeAssignment DocumentType = "assignment"
	DocumentTypeMaterial   DocumentType = "material"
	DocumentTypeOther      DocumentType = "other"
)

func (t DocumentType) String() string {
	return string(t)
}

func IsValidDocumentType(t string) bool {
	switch DocumentType(t) {
	case DocumentTypeLecture, DocumentTypeAssignment, DocumentTypeMaterial, DocumentTypeOther:
		return true
	default:
		return false
	}
}

const (
	UnknownFileSize = "Unknown"
	DefaultFileIcon = "📁"
)

var fileIcons = map[string]string{
	"pdf":  "📕",
	"doc":  "📄",
	"docx": "📄",
	"xls":  "📊",
	"xlsx": "📊",
	"ppt":  "📽️",
	"pptx": "📽️",
	"jpg":  "🖼️",
	"png":  "🖼️",
	"zip":  "📦",
}

type Document struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	FileKey     string       `json:"file" db:"file_key"`
	FileName    string       `json:"file_name" db:"file_name"`
	FileSize    *int64       `json:"file_size" db:"file_size"`
	FileType    DocumentType `json:"file_type" db:"file_type"`
	CourseID    *int64       `json:"course_id" db:"course_id"`
	CourseTitle *string      `json:"course_title" db:"course_title"`
	UploadedBy  *int64       `json:"uploaded_by" db:"uploaded_by"`
	UploadedAt  time.Time    `json:"uploaded_at" db:"uploaded_at"`
	SizeDisplay string       `json:"size_display" db:"-"`
	Icon        string       `json:"icon" db:"-"`
}

// Decorate fills the display-only fields.
func (d *Document) Decorate() {
	d.Icon = FileIcon(d.FileName)
	if d.FileSize == nil {
		d.SizeDisplay = UnknownFileSize
		return
	}
	d.SizeDisplay = HumanFileSize(*d.FileSize)
}

// HumanFileSize formats a byte count as B, KB or MB with one decimal.
func HumanFileSize(size int64) string {
	switch {
	case size < 0:
		return UnknownFileSize
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// FileExtension returns the lower-cased extension without the dot.
func FileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func FileIcon(name string) string {
	if icon, ok := fileIcons[FileExtension(name)]; ok {
		return icon
	}
	return DefaultFileIcon
}
