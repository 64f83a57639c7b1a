package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// AttendanceRepository persists finalized attendance sessions.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

type attendanceSessionRow struct {
	ID        string    `db:"id"`
	TeacherID string    `db:"teacher_id"`
	ClassID   string    `db:"class_id"`
	Date      time.Time `db:"date"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	CreatedAt time.Time `db:"created_at"`
}

type attendanceRecordRow struct {
	ID          string    `db:"id"`
	SessionID   string    `db:"session_id"`
	StudentID   string    `db:"student_id"`
	ClassID     string    `db:"class_id"`
	SubjectID   string    `db:"subject_id"`
	SubjectName string    `db:"subject_name"`
	Status      string    `db:"status"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CreateSession stores an attendance session and its record list in one
// transaction and returns the session with its assigned id.
func (r *AttendanceRepository) CreateSession(ctx context.Context, session *models.AttendanceSession) (*models.AttendanceSession, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create attendance session: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stored := *session
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	sessionRow := attendanceSessionRow{
		ID:        stored.ID,
		TeacherID: stored.TeacherID,
		ClassID:   stored.ClassID,
		Date:      stored.Date,
		StartTime: stored.StartTime,
		EndTime:   stored.EndTime,
		CreatedAt: now,
	}
	if _, err = tx.NamedExecContext(ctx, `INSERT INTO attendance_sessions (id, teacher_id, class_id, date, start_time, end_time, created_at) VALUES (:id, :teacher_id, :class_id, :date, :start_time, :end_time, :created_at)`, &sessionRow); err != nil {
		return nil, fmt.Errorf("insert attendance session: %w", err)
	}

	for i := range stored.Records {
		rec := &stored.Records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		row := attendanceRecordRow{
			ID:          rec.ID,
			SessionID:   stored.ID,
			StudentID:   rec.StudentID,
			ClassID:     rec.ClassID,
			SubjectID:   rec.SubjectID,
			SubjectName: rec.SubjectName,
			Status:      string(rec.Status),
			StartTime:   rec.StartTime,
			EndTime:     rec.EndTime,
			UpdatedAt:   rec.UpdatedAt,
		}
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO attendance_records (id, session_id, student_id, class_id, subject_id, subject_name, status, start_time, end_time, updated_at) VALUES (:id, :session_id, :student_id, :class_id, :subject_id, :subject_name, :status, :start_time, :end_time, :updated_at)`, &row); err != nil {
			return nil, fmt.Errorf("insert attendance record: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attendance session: %w", err)
	}
	return &stored, nil
}
