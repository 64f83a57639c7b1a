package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// ScanSeparator is the literal token separating scan payload segments.
const ScanSeparator = "|---|"

// ScanPayload is the parsed form of a scanned identification code.
type ScanPayload struct {
	Role     models.Role
	SchoolID string
	UserID   string
}

// ParseScanPayload parses a raw scan string of the form
// "role|---|schoolId[|---|userId]". It validates the segment count and the
// role token; the teacher id requirement is enforced by the resolver since
// director codes legitimately omit it.
func ParseScanPayload(raw string) (*ScanPayload, error) {
	segments := strings.Split(raw, ScanSeparator)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if trimmed := strings.TrimSpace(seg); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) < 2 {
		return nil, appErrors.ErrInvalidScanFormat
	}

	role, ok := models.ParseRole(parts[0])
	if !ok {
		return nil, appErrors.ErrInvalidRole
	}

	payload := &ScanPayload{Role: role, SchoolID: parts[1]}
	if len(parts) > 2 {
		payload.UserID = parts[2]
	}
	return payload, nil
}

// ScanResolution is the outcome of resolving a scan code. Directors get a
// login redirect carrying the school id; teachers get an opened session.
type ScanResolution struct {
	Role     models.Role           `json:"role"`
	SchoolID string                `json:"school_id"`
	Teacher  *models.Teacher       `json:"teacher,omitempty"`
	Window   *models.ScheduleWindow `json:"window,omitempty"`
	Session  *models.SessionState  `json:"session,omitempty"`
}

type deviceBindingFinder interface {
	FindBinding(ctx context.Context, deviceID string) (*models.DeviceBinding, error)
}

type classDetailsProvider interface {
	ClassDetails(ctx context.Context, classID string) (*models.ClassDetails, error)
}

type sessionStore interface {
	Get(ctx context.Context, deviceID string) (*models.SessionState, error)
	Put(ctx context.Context, state *models.SessionState) error
	Clear(ctx context.Context, deviceID string) error
}

// ScanService resolves scanned identification codes into either a director
// login redirect or an opened teacher session.
type ScanService struct {
	devices deviceBindingFinder
	classes classDetailsProvider
	store   sessionStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewScanService constructs the scan service.
func NewScanService(devices deviceBindingFinder, classes classDetailsProvider, store sessionStore, logger *zap.Logger) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanService{devices: devices, classes: classes, store: store, logger: logger, now: time.Now}
}

// Resolve parses the payload and dispatches on the role. Teachers must be
// on the bound class roster and have a window scheduled right now.
func (s *ScanService) Resolve(ctx context.Context, deviceID, rawPayload string) (*ScanResolution, error) {
	payload, err := ParseScanPayload(rawPayload)
	if err != nil {
		return nil, err
	}

	switch payload.Role {
	case models.RoleDirector:
		return &ScanResolution{Role: models.RoleDirector, SchoolID: payload.SchoolID}, nil
	case models.RoleTeacher:
		return s.resolveTeacher(ctx, deviceID, payload)
	default:
		return nil, appErrors.ErrInvalidRole
	}
}

func (s *ScanService) resolveTeacher(ctx context.Context, deviceID string, payload *ScanPayload) (*ScanResolution, error) {
	if payload.UserID == "" {
		return nil, appErrors.ErrInvalidTeacherCode
	}

	binding, err := s.devices.FindBinding(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	details, err := s.classes.ClassDetails(ctx, binding.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class details")
	}

	teacher := details.TeacherByID(payload.UserID)
	if teacher == nil {
		return nil, appErrors.ErrTeacherNotFound
	}

	now := s.now()
	window, err := ResolveScheduleForNow(teacher.ID, details.Schedules, now)
	if err != nil {
		return nil, err
	}

	state := &models.SessionState{
		DeviceID:  deviceID,
		SchoolID:  payload.SchoolID,
		Class:     details.Class,
		Teacher:   *teacher,
		Window:    *window,
		Students:  details.Students,
		Phase:     models.PhaseAttendanceFirstPass,
		StartedAt: now,
		Roster:    newRoster(details.Students, details.Class.ID, *window, now),
	}
	if err := s.store.Put(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open session")
	}

	s.logger.Info("session opened",
		zap.String("device_id", deviceID),
		zap.String("teacher_id", teacher.ID),
		zap.String("class_id", details.Class.ID),
		zap.String("subject_id", window.SubjectID),
	)

	return &ScanResolution{
		Role:     models.RoleTeacher,
		SchoolID: payload.SchoolID,
		Teacher:  teacher,
		Window:   window,
		Session:  state,
	}, nil
}
