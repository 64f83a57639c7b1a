package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type deviceRepository interface {
	FindByDeviceID(ctx context.Context, deviceID string) (*models.DeviceBinding, error)
	Upsert(ctx context.Context, binding *models.DeviceBinding) error
}

// BindDeviceRequest is the payload a director submits to configure a tablet.
type BindDeviceRequest struct {
	DeviceID string `json:"device_id" validate:"required"`
	SchoolID string `json:"school_id" validate:"required"`
	ClassID  string `json:"class_id" validate:"required"`
}

// DeviceService manages the device-to-class binding a director sets up
// once per tablet. Every teacher scan afterwards resolves through it.
type DeviceService struct {
	repo      deviceRepository
	classes   *ClassService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDeviceService constructs the device service.
func NewDeviceService(repo deviceRepository, classes *ClassService, validate *validator.Validate, logger *zap.Logger) *DeviceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DeviceService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// FindBinding loads the binding of a device. An unbound device yields
// ErrDeviceNotConfigured so scans on fresh tablets fail with a clear code.
func (s *DeviceService) FindBinding(ctx context.Context, deviceID string) (*models.DeviceBinding, error) {
	binding, err := s.repo.FindByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrDeviceNotConfigured
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load device binding")
	}
	return binding, nil
}

// Bind creates or replaces a device binding on behalf of a director.
func (s *DeviceService) Bind(ctx context.Context, boundBy string, req BindDeviceRequest) (*models.DeviceBinding, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid device binding payload")
	}

	// Verifies the class exists and warms the cache the first scan will hit.
	if _, err := s.classes.ClassDetails(ctx, req.ClassID); err != nil {
		return nil, err
	}

	binding := &models.DeviceBinding{
		DeviceID: req.DeviceID,
		SchoolID: req.SchoolID,
		ClassID:  req.ClassID,
		BoundBy:  boundBy,
	}
	if err := s.repo.Upsert(ctx, binding); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save device binding")
	}

	s.logger.Info("device bound",
		zap.String("device_id", req.DeviceID),
		zap.String("class_id", req.ClassID),
		zap.String("bound_by", boundBy),
	)
	return binding, nil
}
