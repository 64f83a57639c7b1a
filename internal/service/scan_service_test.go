package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// memSessionStore mimics the redis-backed store, round-tripping states
// through JSON so mutations only stick after Put.
type memSessionStore struct {
	states map[string]*models.SessionState
	putErr error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{states: make(map[string]*models.SessionState)}
}

func cloneState(state *models.SessionState) *models.SessionState {
	raw, _ := json.Marshal(state)
	var out models.SessionState
	_ = json.Unmarshal(raw, &out)
	return &out
}

func (s *memSessionStore) Get(ctx context.Context, deviceID string) (*models.SessionState, error) {
	state, ok := s.states[deviceID]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return cloneState(state), nil
}

func (s *memSessionStore) Put(ctx context.Context, state *models.SessionState) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.states[state.DeviceID] = cloneState(state)
	return nil
}

func (s *memSessionStore) Clear(ctx context.Context, deviceID string) error {
	delete(s.states, deviceID)
	return nil
}

type deviceFinderStub struct {
	binding *models.DeviceBinding
	err     error
}

func (d deviceFinderStub) FindBinding(ctx context.Context, deviceID string) (*models.DeviceBinding, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.binding, nil
}

type classProviderStub struct {
	details *models.ClassDetails
	err     error
}

func (p classProviderStub) ClassDetails(ctx context.Context, classID string) (*models.ClassDetails, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.details, nil
}

// mondayMorning is 10:00 on a Monday, inside the fixture window below.
var mondayMorning = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func fixtureDetails() *models.ClassDetails {
	return &models.ClassDetails{
		Class: models.Class{ID: "class-1", Name: "6e A", SchoolID: "school-1"},
		Students: []models.Student{
			{ID: "stu-1", FullName: "Awa Diallo", ClassID: "class-1"},
			{ID: "stu-2", FullName: "Koffi Kouame", ClassID: "class-1"},
			{ID: "stu-3", FullName: "Mariam Toure", ClassID: "class-1"},
		},
		Teachers: []models.Teacher{
			{ID: "teacher-1", FullName: "M. Yao"},
		},
		Schedules: []models.ScheduleWindow{
			{ID: "win-1", ClassID: "class-1", SubjectID: "math", SubjectName: "Maths", TeacherID: "teacher-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		},
	}
}

func newTestScanService(store *memSessionStore) *ScanService {
	svc := NewScanService(
		deviceFinderStub{binding: &models.DeviceBinding{DeviceID: "tab-1", SchoolID: "school-1", ClassID: "class-1"}},
		classProviderStub{details: fixtureDetails()},
		store,
		nil,
	)
	svc.now = func() time.Time { return mondayMorning }
	return svc
}

func TestParseScanPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr *appErrors.Error
		role    models.Role
		userID  string
	}{
		{name: "teacher code", raw: "teacher|---|school-1|---|teacher-1", role: models.RoleTeacher, userID: "teacher-1"},
		{name: "director code", raw: "director|---|school-1", role: models.RoleDirector},
		{name: "whitespace trimmed", raw: " teacher |---| school-1 |---| teacher-1 ", role: models.RoleTeacher, userID: "teacher-1"},
		{name: "empty", raw: "", wantErr: appErrors.ErrInvalidScanFormat},
		{name: "single segment", raw: "teacher", wantErr: appErrors.ErrInvalidScanFormat},
		{name: "blank segments", raw: "|---||---|", wantErr: appErrors.ErrInvalidScanFormat},
		{name: "unknown role", raw: "student|---|school-1", wantErr: appErrors.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseScanPayload(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, appErrors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, payload.Role)
			assert.Equal(t, "school-1", payload.SchoolID)
			assert.Equal(t, tt.userID, payload.UserID)
		})
	}
}

func TestResolveDirectorRedirect(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestScanService(store)

	res, err := svc.Resolve(context.Background(), "tab-1", "director|---|school-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDirector, res.Role)
	assert.Equal(t, "school-1", res.SchoolID)
	assert.Nil(t, res.Session)
	assert.Empty(t, store.states)
}

func TestResolveTeacherOpensSession(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestScanService(store)

	res, err := svc.Resolve(context.Background(), "tab-1", "teacher|---|school-1|---|teacher-1")
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	assert.Equal(t, "teacher-1", res.Teacher.ID)
	assert.Equal(t, "win-1", res.Window.ID)

	state := res.Session
	assert.Equal(t, models.PhaseAttendanceFirstPass, state.Phase)
	require.Len(t, state.Roster, 3)
	for _, rec := range state.Roster {
		assert.Equal(t, models.AttendanceStatusPresent, rec.Status)
		assert.Equal(t, "10:00", rec.StartTime)
		assert.Equal(t, "11:00", rec.EndTime)
		assert.Equal(t, "math", rec.SubjectID)
	}

	stored, err := store.Get(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAttendanceFirstPass, stored.Phase)
}

func TestResolveTeacherMissingIdentifier(t *testing.T) {
	svc := newTestScanService(newMemSessionStore())

	_, err := svc.Resolve(context.Background(), "tab-1", "teacher|---|school-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTeacherCode))
}

func TestResolveTeacherNotOnRoster(t *testing.T) {
	svc := newTestScanService(newMemSessionStore())

	_, err := svc.Resolve(context.Background(), "tab-1", "teacher|---|school-1|---|teacher-99")
	assert.True(t, appErrors.Is(err, appErrors.ErrTeacherNotFound))
}

func TestResolveTeacherNoScheduledClass(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestScanService(store)
	// Sunday, nothing on the schedule.
	svc.now = func() time.Time { return time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC) }

	_, err := svc.Resolve(context.Background(), "tab-1", "teacher|---|school-1|---|teacher-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrNoScheduledClass))
	assert.Empty(t, store.states)
}

func TestResolveUnconfiguredDevice(t *testing.T) {
	svc := NewScanService(
		deviceFinderStub{err: appErrors.ErrDeviceNotConfigured},
		classProviderStub{details: fixtureDetails()},
		newMemSessionStore(),
		nil,
	)
	svc.now = func() time.Time { return mondayMorning }

	_, err := svc.Resolve(context.Background(), "tab-9", "teacher|---|school-1|---|teacher-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrDeviceNotConfigured))
}
