package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

func TestCreateSessionArchive(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArchiveRepository(db)

	mock.ExpectExec("INSERT INTO session_archives").WillReturnResult(sqlmock.NewResult(0, 1))

	archive := &models.SessionArchive{
		DeviceID:    "tab-1",
		ClassID:     "class-1",
		SubjectID:   "math",
		TeacherID:   "teacher-1",
		Date:        time.Now(),
		StudentCount: 24,
	}
	err := repo.Create(context.Background(), archive)
	require.NoError(t, err)
	assert.NotEmpty(t, archive.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSessionArchivesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewArchiveRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "device_id", "class_id", "subject_id", "subject_name", "teacher_id", "teacher_name", "date", "student_count", "absent_count", "late_count", "participant_count", "homework_assigned", "created_at"}).
		AddRow("arch-1", "tab-1", "class-1", "math", "Maths", "teacher-1", "M. Yao", now, 24, 2, 1, 3, true, now)
	mock.ExpectQuery(regexp.QuoteMeta("class_id = $1")).
		WithArgs("class-1", "teacher-1").
		WillReturnRows(rows)

	archives, err := repo.List(context.Background(), models.SessionArchiveFilter{ClassID: "class-1", TeacherID: "teacher-1"})
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "arch-1", archives[0].ID)
	assert.Equal(t, 3, archives[0].ParticipantCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
