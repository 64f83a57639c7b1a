package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
)

// SessionStateRepository stores the transient scan-to-submit state of each
// device in Redis. The state survives process restarts but expires after
// the configured TTL so an abandoned session does not pin a class forever.
type SessionStateRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionStateRepository constructs a session state repository.
func NewSessionStateRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SessionStateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStateRepository{client: client, ttl: ttl, logger: logger}
}

func sessionKey(deviceID string) string {
	return fmt.Sprintf("session:%s", deviceID)
}

func submitLockKey(deviceID string) string {
	return fmt.Sprintf("session:%s:submit", deviceID)
}

// Get loads the session state of a device.
func (r *SessionStateRepository) Get(ctx context.Context, deviceID string) (*models.SessionState, error) {
	raw, err := r.client.Get(ctx, sessionKey(deviceID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", deviceID, err)
	}

	var state models.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", deviceID, err)
	}
	return &state, nil
}

// Put stores the session state of a device, refreshing its TTL.
func (r *SessionStateRepository) Put(ctx context.Context, state *models.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", state.DeviceID, err)
	}
	if err := r.client.Set(ctx, sessionKey(state.DeviceID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", state.DeviceID, err)
	}
	return nil
}

// Clear removes the session state and any submit lock for a device.
func (r *SessionStateRepository) Clear(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, sessionKey(deviceID), submitLockKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("redis clear session %s: %w", deviceID, err)
	}
	return nil
}

// AcquireSubmitLock takes the per-device submission lock. It returns false
// when a submission is already in flight.
func (r *SessionStateRepository) AcquireSubmitLock(ctx context.Context, deviceID string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, submitLockKey(deviceID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis acquire submit lock %s: %w", deviceID, err)
	}
	return ok, nil
}

// ReleaseSubmitLock frees the per-device submission lock.
func (r *SessionStateRepository) ReleaseSubmitLock(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, submitLockKey(deviceID)).Err(); err != nil {
		r.logger.Warn("failed to release submit lock", zap.String("device_id", deviceID), zap.Error(err))
		return fmt.Errorf("redis release submit lock %s: %w", deviceID, err)
	}
	return nil
}
