package models

import "time"

// Participation range enforced before a session can be submitted.
const (
	MinParticipants = 1
	MaxParticipants = 5
)

// Participation marks one student as having participated during a session,
// with an optional free-text comment.
type Participation struct {
	ID        string    `db:"id" json:"id,omitempty"`
	StudentID string    `db:"student_id" json:"student_id"`
	SessionID string    `db:"session_id" json:"session_id,omitempty"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Comment   string    `db:"comment" json:"comment,omitempty"`
}

// ParticipationSession aggregates the participations captured for one class
// meeting. Keyed by subject id (canonical schema).
type ParticipationSession struct {
	ID             string          `json:"id,omitempty"`
	ClassID        string          `json:"class_id"`
	SubjectID      string          `json:"subject_id"`
	Date           time.Time       `json:"date"`
	Participations []Participation `json:"participations"`
}

// ParticipationRangeValid reports whether the number of selected students
// satisfies the [MinParticipants, MaxParticipants] business rule.
func ParticipationRangeValid(count int) bool {
	return count >= MinParticipants && count <= MaxParticipants
}
