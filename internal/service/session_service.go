package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type attendanceWriter interface {
	CreateSession(ctx context.Context, session *models.AttendanceSession) (*models.AttendanceSession, error)
}

type participationWriter interface {
	CreateSession(ctx context.Context, session *models.ParticipationSession) (*models.ParticipationSession, error)
}

type homeworkWriter interface {
	Create(ctx context.Context, homework *models.Homework) (*models.Homework, error)
}

type submitLocker interface {
	AcquireSubmitLock(ctx context.Context, deviceID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, deviceID string) error
}

// SessionArchiver receives the summary of each submitted session.
type SessionArchiver interface {
	EnqueueArchive(state *models.SessionState, participation *models.ParticipationSession) error
}

// HomeworkDraftRequest is the payload for attaching a homework draft.
type HomeworkDraftRequest struct {
	DueDate  time.Time `json:"due_date" validate:"required"`
	IsGraded bool      `json:"is_graded"`
}

// SubmitResult reports what a successful submission wrote.
type SubmitResult struct {
	AttendanceSessionID    string `json:"attendance_session_id,omitempty"`
	ParticipationSessionID string `json:"participation_session_id,omitempty"`
	HomeworkID             string `json:"homework_id,omitempty"`
}

// SessionService coordinates the end of a session: it validates the
// participation range, issues the attendance, participation and homework
// writes together, and clears the transient state only once all of them
// succeed. On failure the state is retained so the teacher can retry.
type SessionService struct {
	store          sessionStore
	locks          submitLocker
	attendance     attendanceWriter
	participations participationWriter
	homeworks      homeworkWriter
	archiver       SessionArchiver
	lockTTL        time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewSessionService constructs the session submission coordinator. The
// archiver may be nil when archiving is disabled.
func NewSessionService(store sessionStore, locks submitLocker, attendance attendanceWriter, participations participationWriter, homeworks homeworkWriter, archiver SessionArchiver, lockTTL time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &SessionService{
		store:          store,
		locks:          locks,
		attendance:     attendance,
		participations: participations,
		homeworks:      homeworks,
		archiver:       archiver,
		lockTTL:        lockTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// Get returns the active session state of a device.
func (s *SessionService) Get(ctx context.Context, deviceID string) (*models.SessionState, error) {
	return s.store.Get(ctx, deviceID)
}

// Abort discards the session and returns the device to the scan screen.
func (s *SessionService) Abort(ctx context.Context, deviceID string) error {
	if err := s.store.Clear(ctx, deviceID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to abort session")
	}
	s.logger.Info("session aborted", zap.String("device_id", deviceID))
	return nil
}

// SetHomework attaches or replaces the optional homework draft. The due
// date must be strictly in the future.
func (s *SessionService) SetHomework(ctx context.Context, deviceID string, req HomeworkDraftRequest) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if !req.DueDate.After(s.now()) {
		return nil, appErrors.ErrHomeworkDueDate
	}

	state.Homework = &models.Homework{
		ClassID:     state.Class.ID,
		TeacherID:   state.Teacher.ID,
		SubjectID:   state.Window.SubjectID,
		SubjectName: state.Window.SubjectName,
		DueDate:     req.DueDate,
		IsGraded:    req.IsGraded,
	}
	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save homework draft")
	}
	return state, nil
}

// ClearHomework removes the homework draft from the session.
func (s *SessionService) ClearHomework(ctx context.Context, deviceID string) (*models.SessionState, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	state.Homework = nil
	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear homework draft")
	}
	return state, nil
}

// Submit closes the session. The three writes are independent and issued
// together; there is no compensating transaction, so a partial backend
// commit followed by a retry can duplicate the committed part. The
// transient state is cleared only after every write succeeds.
func (s *SessionService) Submit(ctx context.Context, deviceID string) (*SubmitResult, error) {
	state, err := s.store.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseParticipation {
		return nil, appErrors.ErrSessionPhase
	}
	if !models.ParticipationRangeValid(len(state.ParticipationDraft)) {
		return nil, appErrors.ErrParticipationRange
	}

	acquired, err := s.locks.AcquireSubmitLock(ctx, deviceID, s.lockTTL)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to guard submission")
	}
	if !acquired {
		return nil, appErrors.ErrSubmissionInProgress
	}

	participationSession := &models.ParticipationSession{
		ClassID:        state.Class.ID,
		SubjectID:      state.Window.SubjectID,
		Date:           s.now().UTC(),
		Participations: state.ParticipationDraft,
	}

	result := &SubmitResult{}
	var wg sync.WaitGroup
	errs := make(chan error, 3)

	if state.Attendance != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := s.attendance.CreateSession(ctx, state.Attendance)
			if err != nil {
				errs <- err
				return
			}
			result.AttendanceSessionID = stored.ID
		}()
	}

	if len(participationSession.Participations) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := s.participations.CreateSession(ctx, participationSession)
			if err != nil {
				errs <- err
				return
			}
			result.ParticipationSessionID = stored.ID
		}()
	}

	if state.Homework != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := s.homeworks.Create(ctx, state.Homework)
			if err != nil {
				errs <- err
				return
			}
			result.HomeworkID = stored.ID
		}()
	}

	wg.Wait()
	close(errs)

	var failed bool
	for err := range errs {
		failed = true
		s.logger.Error("session write failed", zap.String("device_id", deviceID), zap.Error(err))
	}
	if failed {
		if err := s.locks.ReleaseSubmitLock(ctx, deviceID); err != nil {
			s.logger.Warn("failed to release submit lock after failure", zap.String("device_id", deviceID), zap.Error(err))
		}
		return nil, appErrors.ErrSubmissionFailed
	}

	if s.archiver != nil {
		if err := s.archiver.EnqueueArchive(state, participationSession); err != nil {
			s.logger.Warn("failed to enqueue session archive", zap.String("device_id", deviceID), zap.Error(err))
		}
	}

	if err := s.store.Clear(ctx, deviceID); err != nil {
		// The writes are committed; losing the clear only means the stale
		// state expires with its TTL instead of immediately.
		s.logger.Error("failed to clear session state after submit", zap.String("device_id", deviceID), zap.Error(err))
	}

	s.logger.Info("session submitted",
		zap.String("device_id", deviceID),
		zap.String("class_id", state.Class.ID),
		zap.String("teacher_id", state.Teacher.ID),
		zap.Int("participations", len(participationSession.Participations)),
	)
	return result, nil
}
