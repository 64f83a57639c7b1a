package models

import (
	"fmt"
	"time"
)

// ClockFormat is the layout used for schedule start/end times.
const ClockFormat = "15:04"

// ScheduleWindow is a recurring weekly time slot during which a teacher
// teaches a subject to a class. Day of week follows time.Weekday numbering
// (Sunday = 0). Start and end times are wall-clock "HH:mm" strings within
// the same day.
type ScheduleWindow struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Room        *string   `db:"room" json:"room,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Validate checks the window invariants: a known weekday, parseable clock
// times, and start strictly before end within the same day.
func (w ScheduleWindow) Validate() error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d out of range [0,6]", w.DayOfWeek)
	}
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start_time %q must be before end_time %q", w.StartTime, w.EndTime)
	}
	return nil
}

// Contains reports whether t falls inside the window, inclusive on both
// ends, on the window's weekday.
func (w ScheduleWindow) Contains(t time.Time) bool {
	if int(t.Weekday()) != w.DayOfWeek {
		return false
	}
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= start && minute <= end
}

// ParseClock converts an "HH:mm" string to minutes since midnight.
func ParseClock(raw string) (int, error) {
	t, err := time.Parse(ClockFormat, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q, expected HH:mm", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}
