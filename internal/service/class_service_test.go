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

type classReaderStub struct {
	details *models.ClassDetails
	calls   int
}

func (r *classReaderStub) FindByID(ctx context.Context, id string) (*models.Class, error) {
	r.calls++
	class := r.details.Class
	return &class, nil
}

func (r *classReaderStub) ListStudents(ctx context.Context, classID string) ([]models.Student, error) {
	return r.details.Students, nil
}

func (r *classReaderStub) ListTeachers(ctx context.Context, classID string) ([]models.Teacher, error) {
	return r.details.Teachers, nil
}

func (r *classReaderStub) ListSchedules(ctx context.Context, classID string) ([]models.ScheduleWindow, error) {
	return r.details.Schedules, nil
}

type cacheStub struct {
	entries map[string][]byte
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]byte)}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestClassDetailsAssemblesAndCaches(t *testing.T) {
	reader := &classReaderStub{details: fixtureDetails()}
	cache := newCacheStub()
	svc := NewClassService(reader, cache, time.Minute, nil, nil)

	details, err := svc.ClassDetails(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, "class-1", details.Class.ID)
	assert.Len(t, details.Students, 3)
	assert.Len(t, details.Teachers, 1)
	assert.Len(t, details.Schedules, 1)
	assert.Equal(t, 1, reader.calls)

	// Second read comes from the cache.
	_, err = svc.ClassDetails(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)

	svc.Invalidate(context.Background(), "class-1")
	_, err = svc.ClassDetails(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
}

func TestClassDetailsWithoutCache(t *testing.T) {
	reader := &classReaderStub{details: fixtureDetails()}
	svc := NewClassService(reader, nil, time.Minute, nil, nil)

	_, err := svc.ClassDetails(context.Background(), "class-1")
	require.NoError(t, err)
	_, err = svc.ClassDetails(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
}
