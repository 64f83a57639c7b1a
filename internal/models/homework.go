package models

import "time"

// Homework is an optional assignment attached to a session. The due date
// must be strictly in the future when the draft is created.
type Homework struct {
	ID          string    `db:"id" json:"id,omitempty"`
	ClassID     string    `db:"class_id" json:"class_id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	IsGraded    bool      `db:"is_graded" json:"is_graded"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
