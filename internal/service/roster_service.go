package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// newRoster builds the initial roll-call roster: one record per student,
// everyone present, session times derived from the resolved window.
func newRoster(students []models.Student, classID string, window models.ScheduleWindow, now time.Time) []models.AttendanceRecord {
	records := make([]models.AttendanceRecord, len(students))
	start := now.Format(models.ClockFormat)
	for i, student := range students {
		records[i] = models.AttendanceRecord{
			StudentID:   student.ID,
			ClassID:     classID,
			SubjectID:   window.SubjectID,
			SubjectName: window.SubjectName,
			Status:      models.AttendanceStatusPresent,
			StartTime:   start,
			EndTime:     window.EndTime,
			UpdatedAt:   now.UTC(),
		}
	}
	return records
}

// RosterService drives the two-pass attendance state machine. The first
// pass answers "who showed up at all" with present/absent toggles; the
// second pass refines absences into late arrivals. Present students are
// locked once the first pass is finalized.
type RosterService struct {
	store  sessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewRosterService constructs the roster service.
func NewRosterService(store sessionStore, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{store: store, logger: logger, now: time.Now}
}

// ToggleStudent applies one tap on a student card and returns the updated
// record. Legal transitions depend on the pass:
//
//	first pass:  present <-> absent
//	second pass: present locked; absent -> late; late -> absent
func (s *RosterService) ToggleStudent(ctx context.Context, deviceID, studentID string) (*models.AttendanceRecord, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	record := state.RecordFor(studentID)
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not on this roster")
	}

	now := s.now()
	switch state.Phase {
	case models.PhaseAttendanceFirstPass:
		if record.Status == models.AttendanceStatusPresent {
			record.Status = models.AttendanceStatusAbsent
		} else {
			record.Status = models.AttendanceStatusPresent
		}
		record.UpdatedAt = now.UTC()
	case models.PhaseAttendanceSecondPass:
		switch record.Status {
		case models.AttendanceStatusPresent:
			// Present students are locked after the roll call.
			return record, nil
		case models.AttendanceStatusAbsent:
			record.Status = models.AttendanceStatusLate
			record.EndTime = now.Format(models.ClockFormat)
			record.UpdatedAt = now.UTC()
		case models.AttendanceStatusLate:
			record.Status = models.AttendanceStatusAbsent
			record.EndTime = state.Window.EndTime
			record.UpdatedAt = now.UTC()
		}
	default:
		return nil, appErrors.ErrSessionPhase
	}

	updated := *record
	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	return &updated, nil
}

// Finalize advances the roll call. The first call closes the first pass
// and unlocks late corrections; the second call freezes the roster into
// the attendance snapshot (present students filtered out of the payload)
// and moves the session to participation capture.
func (s *RosterService) Finalize(ctx context.Context, deviceID string) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	switch state.Phase {
	case models.PhaseAttendanceFirstPass:
		state.Phase = models.PhaseAttendanceSecondPass
	case models.PhaseAttendanceSecondPass:
		state.Attendance = s.snapshot(state)
		state.Phase = models.PhaseParticipation
	default:
		return nil, appErrors.ErrSessionPhase
	}

	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finalize roll call")
	}

	s.logger.Info("roll call advanced",
		zap.String("device_id", deviceID),
		zap.String("phase", string(state.Phase)),
	)
	return state, nil
}

func (s *RosterService) snapshot(state *models.SessionState) *models.AttendanceSession {
	now := s.now()

	startTime := now.Format(models.ClockFormat)
	if len(state.Roster) > 0 {
		startTime = state.Roster[0].StartTime
	}

	records := make([]models.AttendanceRecord, 0, len(state.Roster))
	for _, rec := range state.Roster {
		if rec.Status != models.AttendanceStatusPresent {
			records = append(records, rec)
		}
	}

	return &models.AttendanceSession{
		TeacherID: state.Teacher.ID,
		ClassID:   state.Class.ID,
		Date:      now.UTC(),
		StartTime: startTime,
		EndTime:   now.Format(models.ClockFormat),
		Records:   records,
	}
}
