package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type schoolRepository interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
	ListClasses(ctx context.Context, schoolID string) ([]models.Class, error)
	ListGrades(ctx context.Context, cycleID string) ([]models.Grade, error)
}

type directorAccessChecker interface {
	HasDirectorAccess(ctx context.Context, userID, schoolID string) (bool, error)
}

// SchoolService serves the school data the configuration screen needs:
// the school record itself, its classes and the grades of its cycle.
type SchoolService struct {
	schools schoolRepository
	users   directorAccessChecker
	logger  *zap.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(schools schoolRepository, users directorAccessChecker, logger *zap.Logger) *SchoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{schools: schools, users: users, logger: logger}
}

// GetSchool loads a school by id.
func (s *SchoolService) GetSchool(ctx context.Context, schoolID string) (*models.School, error) {
	school, err := s.schools.FindByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}
	return school, nil
}

// ListClasses returns the classes of a school.
func (s *SchoolService) ListClasses(ctx context.Context, schoolID string) ([]models.Class, error) {
	classes, err := s.schools.ListClasses(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// ListGrades returns the grades of the school's cycle.
func (s *SchoolService) ListGrades(ctx context.Context, schoolID string) ([]models.Grade, error) {
	school, err := s.GetSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	grades, err := s.schools.ListGrades(ctx, school.CycleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// VerifyDirectorAccess reports whether a user may configure tablets for a
// school.
func (s *SchoolService) VerifyDirectorAccess(ctx context.Context, userID, schoolID string) error {
	allowed, err := s.users.HasDirectorAccess(ctx, userID, schoolID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify director access")
	}
	if !allowed {
		return appErrors.Clone(appErrors.ErrForbidden, "user is not a director of this school")
	}
	return nil
}
