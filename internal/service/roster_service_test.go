package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

func seedSession(t *testing.T, store *memSessionStore, phase models.SessionPhase) *models.SessionState {
	t.Helper()
	details := fixtureDetails()
	window := details.Schedules[0]
	state := &models.SessionState{
		DeviceID:  "tab-1",
		SchoolID:  "school-1",
		Class:     details.Class,
		Teacher:   details.Teachers[0],
		Window:    window,
		Students:  details.Students,
		Phase:     phase,
		StartedAt: mondayMorning,
		Roster:    newRoster(details.Students, details.Class.ID, window, mondayMorning),
	}
	require.NoError(t, store.Put(context.Background(), state))
	return state
}

func newTestRosterService(store *memSessionStore, now time.Time) *RosterService {
	svc := NewRosterService(store, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestNewRosterAllPresent(t *testing.T) {
	details := fixtureDetails()
	roster := newRoster(details.Students, "class-1", details.Schedules[0], mondayMorning)

	require.Len(t, roster, len(details.Students))
	for i, rec := range roster {
		assert.Equal(t, details.Students[i].ID, rec.StudentID)
		assert.Equal(t, models.AttendanceStatusPresent, rec.Status)
		assert.Equal(t, "10:00", rec.StartTime)
		assert.Equal(t, "11:00", rec.EndTime)
	}
}

func TestFirstPassToggle(t *testing.T) {
	store := newMemSessionStore()
	seedSession(t, store, models.PhaseAttendanceFirstPass)
	svc := newTestRosterService(store, mondayMorning)

	rec, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-1")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusAbsent, rec.Status)

	rec, err = svc.ToggleStudent(context.Background(), "tab-1", "stu-1")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, rec.Status)
}

func TestToggleUnknownStudent(t *testing.T) {
	store := newMemSessionStore()
	seedSession(t, store, models.PhaseAttendanceFirstPass)
	svc := newTestRosterService(store, mondayMorning)

	_, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-99")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSecondPassPresentLocked(t *testing.T) {
	store := newMemSessionStore()
	seedSession(t, store, models.PhaseAttendanceSecondPass)
	svc := newTestRosterService(store, mondayMorning)

	rec, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-1")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, rec.Status)

	state, err := store.Get(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusPresent, state.RecordFor("stu-1").Status)
}

func TestSecondPassLateCycle(t *testing.T) {
	store := newMemSessionStore()
	state := seedSession(t, store, models.PhaseAttendanceSecondPass)
	state.RecordFor("stu-2").Status = models.AttendanceStatusAbsent
	require.NoError(t, store.Put(context.Background(), state))

	arrival := mondayMorning.Add(23 * time.Minute)
	svc := newTestRosterService(store, arrival)

	rec, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-2")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusLate, rec.Status)
	assert.Equal(t, "10:23", rec.EndTime)

	rec, err = svc.ToggleStudent(context.Background(), "tab-1", "stu-2")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusAbsent, rec.Status)
	assert.Equal(t, "11:00", rec.EndTime)
}

func TestToggleRejectedAfterRollCall(t *testing.T) {
	store := newMemSessionStore()
	seedSession(t, store, models.PhaseParticipation)
	svc := newTestRosterService(store, mondayMorning)

	_, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionPhase))
}

func TestFinalizeAdvancesPasses(t *testing.T) {
	store := newMemSessionStore()
	seedSession(t, store, models.PhaseAttendanceFirstPass)
	svc := newTestRosterService(store, mondayMorning)

	state, err := svc.Finalize(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAttendanceSecondPass, state.Phase)
	assert.Nil(t, state.Attendance)

	state, err = svc.Finalize(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseParticipation, state.Phase)
	require.NotNil(t, state.Attendance)

	_, err = svc.Finalize(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionPhase))
}

func TestFinalizeSnapshotFiltersPresent(t *testing.T) {
	store := newMemSessionStore()
	state := seedSession(t, store, models.PhaseAttendanceFirstPass)
	svc := newTestRosterService(store, mondayMorning)

	// First pass: stu-2 and stu-3 did not show up.
	_, err := svc.ToggleStudent(context.Background(), "tab-1", "stu-2")
	require.NoError(t, err)
	_, err = svc.ToggleStudent(context.Background(), "tab-1", "stu-3")
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), "tab-1")
	require.NoError(t, err)

	// Second pass: stu-3 arrives late.
	arrival := mondayMorning.Add(15 * time.Minute)
	svc.now = func() time.Time { return arrival }
	_, err = svc.ToggleStudent(context.Background(), "tab-1", "stu-3")
	require.NoError(t, err)

	state, err = svc.Finalize(context.Background(), "tab-1")
	require.NoError(t, err)

	snap := state.Attendance
	require.NotNil(t, snap)
	assert.Equal(t, state.Teacher.ID, snap.TeacherID)
	assert.Equal(t, state.Class.ID, snap.ClassID)
	require.Len(t, snap.Records, 2)

	byStudent := map[string]models.AttendanceRecord{}
	for _, rec := range snap.Records {
		byStudent[rec.StudentID] = rec
	}
	assert.NotContains(t, byStudent, "stu-1")
	assert.Equal(t, models.AttendanceStatusAbsent, byStudent["stu-2"].Status)
	assert.Equal(t, models.AttendanceStatusLate, byStudent["stu-3"].Status)
	assert.Equal(t, "10:15", byStudent["stu-3"].EndTime)
}
