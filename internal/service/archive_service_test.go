package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	"github.com/ldsgroups225/yeko-pointage/pkg/jobs"
)

type archiveRepoStub struct {
	mu      sync.Mutex
	created []*models.SessionArchive
}

func (r *archiveRepoStub) Create(ctx context.Context, archive *models.SessionArchive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, archive)
	return nil
}

func (r *archiveRepoStub) FindByID(ctx context.Context, id string) (*models.SessionArchive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, context.Canceled
}

func (r *archiveRepoStub) List(ctx context.Context, filter models.SessionArchiveFilter) ([]models.SessionArchive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SessionArchive, 0, len(r.created))
	for _, a := range r.created {
		out = append(out, *a)
	}
	return out, nil
}

func (r *archiveRepoStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func submittedState() *models.SessionState {
	details := fixtureDetails()
	state := &models.SessionState{
		DeviceID:  "tab-1",
		Class:     details.Class,
		Teacher:   details.Teachers[0],
		Window:    details.Schedules[0],
		Students:  details.Students,
		StartedAt: mondayMorning,
		Homework:  &models.Homework{DueDate: mondayMorning.AddDate(0, 0, 7)},
		Attendance: &models.AttendanceSession{
			Records: []models.AttendanceRecord{
				{StudentID: "stu-2", Status: models.AttendanceStatusAbsent},
				{StudentID: "stu-3", Status: models.AttendanceStatusLate},
			},
		},
	}
	return state
}

func TestBuildArchiveCounts(t *testing.T) {
	state := submittedState()
	participation := &models.ParticipationSession{
		Participations: []models.Participation{{StudentID: "stu-1"}},
	}

	archive := buildArchive(state, participation)
	assert.Equal(t, "tab-1", archive.DeviceID)
	assert.Equal(t, "Maths", archive.SubjectName)
	assert.Equal(t, 3, archive.StudentCount)
	assert.Equal(t, 1, archive.AbsentCount)
	assert.Equal(t, 1, archive.LateCount)
	assert.Equal(t, 1, archive.ParticipantCount)
	assert.True(t, archive.HomeworkAssigned)
	assert.NotEmpty(t, archive.ID)
}

func TestEnqueueArchivePersists(t *testing.T) {
	repo := &archiveRepoStub{}
	svc := NewArchiveService(repo, jobs.QueueConfig{Workers: 1}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	err := svc.EnqueueArchive(submittedState(), &models.ParticipationSession{
		Participations: []models.Participation{{StudentID: "stu-1"}},
	})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for repo.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("archive was not persisted")
		case <-time.After(10 * time.Millisecond):
		}
	}
	archives, err := repo.List(context.Background(), models.SessionArchiveFilter{})
	require.NoError(t, err)
	assert.Equal(t, "class-1", archives[0].ClassID)
}

func TestExportCSVIncludesRows(t *testing.T) {
	repo := &archiveRepoStub{
		created: []*models.SessionArchive{
			{ID: "arch-1", ClassID: "class-1", SubjectName: "Maths", TeacherName: "M. Yao", Date: mondayMorning, StudentCount: 24, AbsentCount: 2, ParticipantCount: 3},
		},
	}
	svc := NewArchiveService(repo, jobs.QueueConfig{}, nil)

	data, err := svc.ExportCSV(context.Background(), models.SessionArchiveFilter{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Maths")
	assert.Contains(t, string(data), "M. Yao")
}
