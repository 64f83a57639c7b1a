package models

import "time"

// Class represents a class group within a school.
type Class struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	GradeID       string    `db:"grade_id" json:"grade_id"`
	SchoolID      string    `db:"school_id" json:"school_id"`
	MainTeacherID *string   `db:"main_teacher_id" json:"main_teacher_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ClassDetails aggregates everything a configured tablet needs for a class:
// the class itself, its student roster, its teachers and its weekly schedule.
type ClassDetails struct {
	Class     Class            `json:"class"`
	Students  []Student        `json:"students"`
	Teachers  []Teacher        `json:"teachers"`
	Schedules []ScheduleWindow `json:"schedules"`
}

// TeacherByID returns the teacher with the given id, or nil.
func (d *ClassDetails) TeacherByID(id string) *Teacher {
	for i := range d.Teachers {
		if d.Teachers[i].ID == id {
			return &d.Teachers[i]
		}
	}
	return nil
}
