package models

import "time"

// SessionArchive is the per-session summary stored after a successful
// submission, used by reporting and the summary export.
type SessionArchive struct {
	ID               string    `db:"id" json:"id"`
	DeviceID         string    `db:"device_id" json:"device_id"`
	ClassID          string    `db:"class_id" json:"class_id"`
	SubjectID        string    `db:"subject_id" json:"subject_id"`
	SubjectName      string    `db:"subject_name" json:"subject_name"`
	TeacherID        string    `db:"teacher_id" json:"teacher_id"`
	TeacherName      string    `db:"teacher_name" json:"teacher_name"`
	Date             time.Time `db:"date" json:"date"`
	StudentCount     int       `db:"student_count" json:"student_count"`
	AbsentCount      int       `db:"absent_count" json:"absent_count"`
	LateCount        int       `db:"late_count" json:"late_count"`
	ParticipantCount int       `db:"participant_count" json:"participant_count"`
	HomeworkAssigned bool      `db:"homework_assigned" json:"homework_assigned"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// SessionArchiveFilter scopes archive listing queries.
type SessionArchiveFilter struct {
	ClassID   string
	TeacherID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
}
