package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

func TestCreateAttendanceSession(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO attendance_sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO attendance_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO attendance_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	session := &models.AttendanceSession{
		TeacherID: "teacher-1",
		ClassID:   "class-1",
		Date:      time.Now(),
		StartTime: "10:00",
		EndTime:   "10:55",
		Records: []models.AttendanceRecord{
			{StudentID: "stu-2", Status: models.AttendanceStatusAbsent, StartTime: "10:00", EndTime: "11:00"},
			{StudentID: "stu-3", Status: models.AttendanceStatusLate, StartTime: "10:00", EndTime: "10:15"},
		},
	}

	stored, err := repo.CreateSession(context.Background(), session)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	for _, rec := range stored.Records {
		assert.NotEmpty(t, rec.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAttendanceSessionRollsBackOnRecordFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO attendance_sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO attendance_records").WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	session := &models.AttendanceSession{
		TeacherID: "teacher-1",
		ClassID:   "class-1",
		Date:      time.Now(),
		Records: []models.AttendanceRecord{
			{StudentID: "stu-2", Status: models.AttendanceStatusAbsent},
		},
	}

	_, err := repo.CreateSession(context.Background(), session)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
