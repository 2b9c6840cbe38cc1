package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{-1, UnknownFileSize},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanFileSize(tt.size))
		})
	}
}

func TestFileIcon(t *testing.T) {
	assert.Equal(t, "📕", FileIcon("syllabus.PDF"))
	assert.Equal(t, "📄", FileIcon("notes.docx"))
	assert.Equal(t, "📦", FileIcon("archive.tar.zip"))
	assert.Equal(t, DefaultFileIcon, FileIcon("README"))
	assert.Equal(t, DefaultFileIcon, FileIcon("video.mp4"))
}

func TestDocumentDecorate(t *testing.T) {
	doc := &Document{FileName: "slides.pptx"}
	doc.Decorate()
	assert.Equal(t, UnknownFileSize, doc.SizeDisplay)
	assert.Equal(t, "📽️", doc.Icon)

	size := int64(2048)
	doc.FileSize = &size
	doc.Decorate()
	assert.Equal(t, "2.0 KB", doc.SizeDisplay)
}

func TestIsValidDocumentType(t *testing.T) {
	for _, v := range []string{"lecture", "assignment", "material", "other"} {
		assert.True(t, IsValidDocumentType(v), v)
	}
	assert.False(t, IsValidDocumentType("video"))
	assert.False(t, IsValidDocumentType(""))
}

func TestAssignmentIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a := Assignment{DueDate: now.Add(-time.Minute)}
	assert.True(t, a.IsOverdue(now))

	a.DueDate = now.Add(time.Hour)
	assert.False(t, a.IsOverdue(now))

	a.DueDate = now
	assert.False(t, a.IsOverdue(now))
}

func TestWeekday(t *testing.T) {
	assert.True(t, IsValidWeekday("mon"))
	assert.False(t, IsValidWeekday("monday"))
	assert.Equal(t, "Sunday", Sunday.DisplayName())
	assert.Len(t, Weekdays, 7)
}
