package models

import "time"

// SessionPhase tracks where a device session sits in the scan-to-submit
// lifecycle. Phases advance strictly forward; only a successful submission
// or an abort returns the device to the scan screen.
type SessionPhase string

const (
	PhaseAttendanceFirstPass  SessionPhase = "attendance_first_pass"
	PhaseAttendanceSecondPass SessionPhase = "attendance_second_pass"
	PhaseParticipation        SessionPhase = "participation"
)

// SessionState is the transient state of one scan-to-submit cycle for a
// device. It replaces the original client's process-wide atoms with an
// explicit aggregate that the session store persists between requests and
// that only the submission coordinator may clear.
type SessionState struct {
	DeviceID  string         `json:"device_id"`
	SchoolID  string         `json:"school_id"`
	Class     Class          `json:"class"`
	Teacher   Teacher        `json:"teacher"`
	Window    ScheduleWindow `json:"window"`
	Students  []Student      `json:"students"`
	Phase     SessionPhase   `json:"phase"`
	StartedAt time.Time      `json:"started_at"`

	// Roster holds one record per student for the whole session.
	Roster []AttendanceRecord `json:"roster"`

	// Attendance is the finalized snapshot, nil until the roll call ends.
	Attendance *AttendanceSession `json:"attendance,omitempty"`

	// ParticipationDraft is the bounded multi-select, keyed by student id.
	ParticipationDraft []Participation `json:"participation_draft,omitempty"`

	// Homework is the optional assignment draft for this session.
	Homework *Homework `json:"homework,omitempty"`
}

// RecordFor returns a pointer to the roster record of the given student.
func (s *SessionState) RecordFor(studentID string) *AttendanceRecord {
	for i := range s.Roster {
		if s.Roster[i].StudentID == studentID {
			return &s.Roster[i]
		}
	}
	return nil
}

// ParticipationIndex returns the index of the student's draft entry, or -1.
func (s *SessionState) ParticipationIndex(studentID string) int {
	for i := range s.ParticipationDraft {
		if s.ParticipationDraft[i].StudentID == studentID {
			return i
		}
	}
	return -1
}

// EligibleParticipants lists the students who may be selected for
// participation: everyone except those still marked absent once the roll
// call is finalized.
func (s *SessionState) EligibleParticipants() []Student {
	if s.Attendance == nil {
		return s.Students
	}
	absent := make(map[string]struct{})
	for _, rec := range s.Attendance.Records {
		if rec.Status == AttendanceStatusAbsent {
			absent[rec.StudentID] = struct{}{}
		}
	}
	eligible := make([]Student, 0, len(s.Students))
	for _, st := range s.Students {
		if _, ok := absent[st.ID]; !ok {
			eligible = append(eligible, st)
		}
	}
	return eligible
}
