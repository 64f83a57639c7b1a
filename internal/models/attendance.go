package models

import "time"

// AttendanceStatus represents the status of a roster record.
type AttendanceStatus string

const (
	AttendanceStatusPresent        AttendanceStatus = "present"
	AttendanceStatusAbsent         AttendanceStatus = "absent"
	AttendanceStatusLate           AttendanceStatus = "late"
	AttendanceStatusEarlyDeparture AttendanceStatus = "early_departure"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusEarlyDeparture:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one student's attendance for one session. EndTime
// starts as the schedule window's end and is overwritten with the arrival
// time when the student is reclassified as late during the second pass.
type AttendanceRecord struct {
	ID          string           `db:"id" json:"id,omitempty"`
	StudentID   string           `db:"student_id" json:"student_id"`
	ClassID     string           `db:"class_id" json:"class_id"`
	SubjectID   string           `db:"subject_id" json:"subject_id"`
	SubjectName string           `db:"subject_name" json:"subject_name"`
	Status      AttendanceStatus `db:"status" json:"status"`
	StartTime   string           `db:"start_time" json:"start_time"`
	EndTime     string           `db:"end_time" json:"end_time"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceSession is the finalized roll-call snapshot submitted to the
// backend. Records holds only non-present students: present-by-default
// students are omitted from the payload.
type AttendanceSession struct {
	ID        string             `json:"id,omitempty"`
	TeacherID string             `json:"teacher_id"`
	ClassID   string             `json:"class_id"`
	Date      time.Time          `json:"date"`
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Records   []AttendanceRecord `json:"records"`
}
