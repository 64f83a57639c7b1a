package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/export"
	"github.com/ldsgroups225/yeko-pointage/pkg/jobs"
)

type archiveRepository interface {
	Create(ctx context.Context, archive *models.SessionArchive) error
	FindByID(ctx context.Context, id string) (*models.SessionArchive, error)
	List(ctx context.Context, filter models.SessionArchiveFilter) ([]models.SessionArchive, error)
}

const archiveJobType = "session.archive"

// ArchiveService records a summary row for every submitted session and
// serves the reporting reads. Writes go through a background queue so a
// slow archive insert never delays the submit response.
type ArchiveService struct {
	repo   archiveRepository
	queue  *jobs.Queue
	pdf    *export.PDFExporter
	csv    *export.CSVExporter
	logger *zap.Logger
}

// NewArchiveService constructs the archive service. Call Start before
// enqueuing.
func NewArchiveService(repo archiveRepository, cfg jobs.QueueConfig, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ArchiveService{
		repo:   repo,
		pdf:    export.NewPDFExporter(),
		csv:    export.NewCSVExporter(),
		logger: logger,
	}
	cfg.Logger = logger
	s.queue = jobs.NewQueue("session-archives", s.handleJob, cfg)
	return s
}

// Start launches the background workers.
func (s *ArchiveService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *ArchiveService) Stop() {
	s.queue.Stop()
}

// EnqueueArchive summarises a submitted session and queues the write.
func (s *ArchiveService) EnqueueArchive(state *models.SessionState, participation *models.ParticipationSession) error {
	archive := buildArchive(state, participation)
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    archiveJobType,
		Payload: archive,
	})
}

func (s *ArchiveService) handleJob(ctx context.Context, job jobs.Job) error {
	archive, ok := job.Payload.(*models.SessionArchive)
	if !ok {
		s.logger.Error("unexpected archive job payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.repo.Create(ctx, archive)
}

// Get loads a single archive.
func (s *ArchiveService) Get(ctx context.Context, id string) (*models.SessionArchive, error) {
	archive, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session archive not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session archive")
	}
	return archive, nil
}

// List returns archives matching the filter.
func (s *ArchiveService) List(ctx context.Context, filter models.SessionArchiveFilter) ([]models.SessionArchive, error) {
	archives, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list session archives")
	}
	return archives, nil
}

// ExportPDF renders the filtered archives as a PDF report.
func (s *ArchiveService) ExportPDF(ctx context.Context, filter models.SessionArchiveFilter) ([]byte, error) {
	archives, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	preamble := []string{
		fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04")),
		fmt.Sprintf("Sessions: %d", len(archives)),
	}
	data, err := s.pdf.Render(archiveDataset(archives), "Session Report", preamble)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
	}
	return data, nil
}

// ExportCSV renders the filtered archives as CSV.
func (s *ArchiveService) ExportCSV(ctx context.Context, filter models.SessionArchiveFilter) ([]byte, error) {
	archives, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(archiveDataset(archives))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
	}
	return data, nil
}

func buildArchive(state *models.SessionState, participation *models.ParticipationSession) *models.SessionArchive {
	absent, late := 0, 0
	if state.Attendance != nil {
		for _, rec := range state.Attendance.Records {
			switch rec.Status {
			case models.AttendanceStatusAbsent:
				absent++
			case models.AttendanceStatusLate:
				late++
			}
		}
	}
	participants := 0
	if participation != nil {
		participants = len(participation.Participations)
	}
	return &models.SessionArchive{
		ID:               uuid.NewString(),
		DeviceID:         state.DeviceID,
		ClassID:          state.Class.ID,
		SubjectID:        state.Window.SubjectID,
		SubjectName:      state.Window.SubjectName,
		TeacherID:        state.Teacher.ID,
		TeacherName:      state.Teacher.FullName,
		Date:             state.StartedAt.UTC(),
		StudentCount:     len(state.Students),
		AbsentCount:      absent,
		LateCount:        late,
		ParticipantCount: participants,
		HomeworkAssigned: state.Homework != nil,
		CreatedAt:        time.Now().UTC(),
	}
}

func archiveDataset(archives []models.SessionArchive) export.Dataset {
	headers := []string{"Date", "Class", "Subject", "Teacher", "Students", "Absent", "Late", "Participants", "Homework"}
	rows := make([]map[string]string, 0, len(archives))
	for _, a := range archives {
		homework := "no"
		if a.HomeworkAssigned {
			homework = "yes"
		}
		rows = append(rows, map[string]string{
			"Date":         a.Date.Format("2006-01-02 15:04"),
			"Class":        a.ClassID,
			"Subject":      a.SubjectName,
			"Teacher":      a.TeacherName,
			"Students":     fmt.Sprintf("%d", a.StudentCount),
			"Absent":       fmt.Sprintf("%d", a.AbsentCount),
			"Late":         fmt.Sprintf("%d", a.LateCount),
			"Participants": fmt.Sprintf("%d", a.ParticipantCount),
			"Homework":     homework,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
