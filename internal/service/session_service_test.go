package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type attendanceWriterStub struct {
	mu       sync.Mutex
	sessions []*models.AttendanceSession
	err      error
}

func (w *attendanceWriterStub) CreateSession(ctx context.Context, session *models.AttendanceSession) (*models.AttendanceSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	stored := *session
	stored.ID = fmt.Sprintf("att-%d", len(w.sessions)+1)
	w.sessions = append(w.sessions, &stored)
	return &stored, nil
}

type participationWriterStub struct {
	mu       sync.Mutex
	sessions []*models.ParticipationSession
	err      error
}

func (w *participationWriterStub) CreateSession(ctx context.Context, session *models.ParticipationSession) (*models.ParticipationSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	stored := *session
	stored.ID = fmt.Sprintf("part-%d", len(w.sessions)+1)
	w.sessions = append(w.sessions, &stored)
	return &stored, nil
}

type homeworkWriterStub struct {
	mu        sync.Mutex
	homeworks []*models.Homework
	err       error
}

func (w *homeworkWriterStub) Create(ctx context.Context, homework *models.Homework) (*models.Homework, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	stored := *homework
	stored.ID = fmt.Sprintf("hw-%d", len(w.homeworks)+1)
	w.homeworks = append(w.homeworks, &stored)
	return &stored, nil
}

type lockStub struct {
	mu       sync.Mutex
	held     bool
	acquires int
	releases int
}

func (l *lockStub) AcquireSubmitLock(ctx context.Context, deviceID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func (l *lockStub) ReleaseSubmitLock(ctx context.Context, deviceID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	l.releases++
	return nil
}

type archiverStub struct {
	archives []*models.SessionState
	err      error
}

func (a *archiverStub) EnqueueArchive(state *models.SessionState, participation *models.ParticipationSession) error {
	if a.err != nil {
		return a.err
	}
	a.archives = append(a.archives, state)
	return nil
}

type sessionFixture struct {
	store       *memSessionStore
	locks       *lockStub
	attendance  *attendanceWriterStub
	partWriter  *participationWriterStub
	homework    *homeworkWriterStub
	archiver    *archiverStub
	svc         *SessionService
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		store:      newMemSessionStore(),
		locks:      &lockStub{},
		attendance: &attendanceWriterStub{},
		partWriter: &participationWriterStub{},
		homework:   &homeworkWriterStub{},
		archiver:   &archiverStub{},
	}
	f.svc = NewSessionService(f.store, f.locks, f.attendance, f.partWriter, f.homework, f.archiver, 30*time.Second, nil)
	f.svc.now = func() time.Time { return mondayMorning.Add(55 * time.Minute) }
	return f
}

// seedSubmittableSession prepares a session at participation phase with a
// snapshot, two selected participants and a homework draft.
func seedSubmittableSession(t *testing.T, f *sessionFixture) *models.SessionState {
	t.Helper()
	state := seedSession(t, f.store, models.PhaseParticipation)
	state.RecordFor("stu-2").Status = models.AttendanceStatusAbsent
	state.Attendance = &models.AttendanceSession{
		TeacherID: state.Teacher.ID,
		ClassID:   state.Class.ID,
		Date:      mondayMorning,
		StartTime: "10:00",
		EndTime:   "10:55",
		Records:   []models.AttendanceRecord{*state.RecordFor("stu-2")},
	}
	state.ParticipationDraft = []models.Participation{
		{StudentID: "stu-1", Timestamp: mondayMorning.Add(20 * time.Minute)},
		{StudentID: "stu-3", Timestamp: mondayMorning.Add(40 * time.Minute), Comment: "good answer"},
	}
	state.Homework = &models.Homework{
		ClassID:   state.Class.ID,
		TeacherID: state.Teacher.ID,
		SubjectID: state.Window.SubjectID,
		DueDate:   mondayMorning.AddDate(0, 0, 7),
	}
	require.NoError(t, f.store.Put(context.Background(), state))
	return state
}

func TestSubmitSuccessClearsState(t *testing.T) {
	f := newSessionFixture(t)
	seedSubmittableSession(t, f)

	result, err := f.svc.Submit(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, "att-1", result.AttendanceSessionID)
	assert.Equal(t, "part-1", result.ParticipationSessionID)
	assert.Equal(t, "hw-1", result.HomeworkID)

	require.Len(t, f.partWriter.sessions, 1)
	stored := f.partWriter.sessions[0]
	assert.Equal(t, "math", stored.SubjectID)
	assert.Len(t, stored.Participations, 2)

	require.Len(t, f.archiver.archives, 1)
	assert.Empty(t, f.store.states)

	_, err = f.svc.Get(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionNotFound))
}

func TestSubmitSkipsMissingParts(t *testing.T) {
	f := newSessionFixture(t)
	state := seedSubmittableSession(t, f)
	state.Homework = nil
	require.NoError(t, f.store.Put(context.Background(), state))

	result, err := f.svc.Submit(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Empty(t, result.HomeworkID)
	assert.Empty(t, f.homework.homeworks)
	assert.Len(t, f.attendance.sessions, 1)
}

func TestSubmitParticipationRangeEnforced(t *testing.T) {
	f := newSessionFixture(t)
	state := seedSubmittableSession(t, f)

	state.ParticipationDraft = nil
	require.NoError(t, f.store.Put(context.Background(), state))
	_, err := f.svc.Submit(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrParticipationRange))

	state.ParticipationDraft = make([]models.Participation, models.MaxParticipants+1)
	for i := range state.ParticipationDraft {
		state.ParticipationDraft[i] = models.Participation{StudentID: fmt.Sprintf("stu-%d", i)}
	}
	require.NoError(t, f.store.Put(context.Background(), state))
	_, err = f.svc.Submit(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrParticipationRange))

	// Nothing reached the writers and no lock was taken.
	assert.Empty(t, f.attendance.sessions)
	assert.Zero(t, f.locks.acquires)
}

func TestSubmitPartialFailureRetainsState(t *testing.T) {
	f := newSessionFixture(t)
	seedSubmittableSession(t, f)
	f.partWriter.err = fmt.Errorf("backend unavailable")

	_, err := f.svc.Submit(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSubmissionFailed))

	// State survives so the teacher can retry, and the lock is freed.
	state, getErr := f.svc.Get(context.Background(), "tab-1")
	require.NoError(t, getErr)
	assert.Len(t, state.ParticipationDraft, 2)
	assert.Equal(t, 1, f.locks.releases)
	assert.Empty(t, f.archiver.archives)
}

func TestSubmitWhileInProgress(t *testing.T) {
	f := newSessionFixture(t)
	seedSubmittableSession(t, f)
	f.locks.held = true

	_, err := f.svc.Submit(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSubmissionInProgress))
	assert.Empty(t, f.attendance.sessions)
	assert.Empty(t, f.partWriter.sessions)
}

func TestSubmitWrongPhase(t *testing.T) {
	f := newSessionFixture(t)
	seedSession(t, f.store, models.PhaseAttendanceSecondPass)

	_, err := f.svc.Submit(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionPhase))
}

func TestSetHomeworkDraft(t *testing.T) {
	f := newSessionFixture(t)
	seedSession(t, f.store, models.PhaseParticipation)

	due := mondayMorning.AddDate(0, 0, 3)
	state, err := f.svc.SetHomework(context.Background(), "tab-1", HomeworkDraftRequest{DueDate: due, IsGraded: true})
	require.NoError(t, err)
	require.NotNil(t, state.Homework)
	assert.Equal(t, "math", state.Homework.SubjectID)
	assert.True(t, state.Homework.IsGraded)

	state, err = f.svc.ClearHomework(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Nil(t, state.Homework)
}

func TestSetHomeworkPastDueDateRejected(t *testing.T) {
	f := newSessionFixture(t)
	seedSession(t, f.store, models.PhaseParticipation)

	_, err := f.svc.SetHomework(context.Background(), "tab-1", HomeworkDraftRequest{DueDate: mondayMorning.Add(-time.Hour)})
	assert.True(t, appErrors.Is(err, appErrors.ErrHomeworkDueDate))

	state, err := f.svc.Get(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Nil(t, state.Homework)
}

func TestAbortDiscardsSession(t *testing.T) {
	f := newSessionFixture(t)
	seedSession(t, f.store, models.PhaseAttendanceFirstPass)

	require.NoError(t, f.svc.Abort(context.Background(), "tab-1"))
	_, err := f.svc.Get(context.Background(), "tab-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionNotFound))
}
