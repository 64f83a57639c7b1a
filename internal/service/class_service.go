package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListStudents(ctx context.Context, classID string) ([]models.Student, error)
	ListTeachers(ctx context.Context, classID string) ([]models.Teacher, error)
	ListSchedules(ctx context.Context, classID string) ([]models.ScheduleWindow, error)
}

// DetailsCache abstracts the redis-backed cache so callers can leave it
// nil when caching is disabled.
type DetailsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func classDetailsKey(classID string) string {
	return fmt.Sprintf("class:details:%s", classID)
}

// ClassService assembles the class payload a configured tablet works from.
// The roster, teacher list and weekly schedule are fetched together and the
// assembled result is cached, since every scan on the device reads it.
type ClassService struct {
	classes  classReader
	cache    DetailsCache
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewClassService constructs the class service. A nil cache disables caching.
func NewClassService(classes classReader, cache DetailsCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &ClassService{classes: classes, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// ClassDetails loads a class with its students, teachers and schedule.
func (s *ClassService) ClassDetails(ctx context.Context, classID string) (*models.ClassDetails, error) {
	if s.cache != nil {
		var cached models.ClassDetails
		if err := s.cache.Get(ctx, classDetailsKey(classID), &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		} else if !appErrors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("class details cache read failed", zap.String("class_id", classID), zap.Error(err))
		} else {
			s.metrics.RecordCacheOperation(false)
		}
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "class not found")
	}

	details := &models.ClassDetails{Class: *class}

	var wg sync.WaitGroup
	errs := make(chan error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		students, err := s.classes.ListStudents(ctx, classID)
		if err != nil {
			errs <- err
			return
		}
		details.Students = students
	}()
	go func() {
		defer wg.Done()
		teachers, err := s.classes.ListTeachers(ctx, classID)
		if err != nil {
			errs <- err
			return
		}
		details.Teachers = teachers
	}()
	go func() {
		defer wg.Done()
		schedules, err := s.classes.ListSchedules(ctx, classID)
		if err != nil {
			errs <- err
			return
		}
		details.Schedules = schedules
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class details")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, classDetailsKey(classID), details, s.cacheTTL); err != nil {
			s.logger.Warn("class details cache write failed", zap.String("class_id", classID), zap.Error(err))
		}
	}
	return details, nil
}

// Invalidate drops the cached details of a class, e.g. after a rebinding.
func (s *ClassService) Invalidate(ctx context.Context, classID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, classDetailsKey(classID)); err != nil {
		s.logger.Warn("class details cache invalidation failed", zap.String("class_id", classID), zap.Error(err))
	}
}
