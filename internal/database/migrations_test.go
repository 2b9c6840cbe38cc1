package database

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)
	foreignKeyRe  = regexp.MustCompile(`(?m)^\s*(\w+)\s+[^\n]*?REFERENCES (\w+) \(id\) ON DELETE (CASCADE|SET NULL|RESTRICT|NO ACTION)`)
)

// foreignKeys maps "table.column" to "referenced_table ACTION" for every
// REFERENCES clause in the initial schema.
func foreignKeys(t *testing.T) map[string]string {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	schema := string(raw)

	keys := map[string]string{}
	for _, table := range createTableRe.FindAllStringSubmatch(schema, -1) {
		for _, fk := range foreignKeyRe.FindAllStringSubmatch(table[2], -1) {
			keys[table[1]+"."+fk[1]] = fk[2] + " " + fk[3]
		}
	}

	require.Equal(t, strings.Count(schema, "REFERENCES"), len(keys),
		"every foreign key must declare its ON DELETE action")
	return keys
}

func TestSchema_OnDeleteActions(t *testing.T) {
	keys := foreignKeys(t)

	want := map[string]string{
		// Deleting a course removes its roster, timetable and assignments
		// but keeps its documents as general material.
		"enrollments.course_id": "courses CASCADE",
		"schedules.course_id":   "courses CASCADE",
		"assignments.course_id": "courses CASCADE",
		"documents.course_id":   "courses SET NULL",

		// Deleting an enrollment removes its grade.
		"grades.enrollment_id": "enrollments CASCADE",

		"enrollments.student_id": "students CASCADE",
		"courses.teacher_id":     "teachers SET NULL",

		"teachers.user_id":        "users CASCADE",
		"announcements.author_id": "users SET NULL",
		"documents.uploaded_by":   "users SET NULL",
		"chat_messages.user_id":   "users CASCADE",
	}

	assert.Equal(t, want, keys)
}

func TestSchema_DownDropsEveryTable(t *testing.T) {
	up, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	down, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init.down.sql"))
	require.NoError(t, err)

	for _, table := range createTableRe.FindAllStringSubmatch(string(up), -1) {
		assert.Contains(t, string(down), table[1], "down migration must drop %s", table[1])
	}
}
