package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

// DeviceRepository persists device-to-class bindings.
type DeviceRepository struct {
	db *sqlx.DB
}

// NewDeviceRepository creates a new device repository.
func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// FindByDeviceID loads the binding of a device.
func (r *DeviceRepository) FindByDeviceID(ctx context.Context, deviceID string) (*models.DeviceBinding, error) {
	const query = `SELECT device_id, school_id, class_id, bound_by, bound_at, updated_at FROM device_bindings WHERE device_id = $1`
	var binding models.DeviceBinding
	if err := r.db.GetContext(ctx, &binding, query, deviceID); err != nil {
		return nil, err
	}
	return &binding, nil
}

// Upsert creates or replaces a device binding.
func (r *DeviceRepository) Upsert(ctx context.Context, binding *models.DeviceBinding) error {
	now := time.Now().UTC()
	if binding.BoundAt.IsZero() {
		binding.BoundAt = now
	}
	binding.UpdatedAt = now

	const query = `INSERT INTO device_bindings (device_id, school_id, class_id, bound_by, bound_at, updated_at)
		VALUES (:device_id, :school_id, :class_id, :bound_by, :bound_at, :updated_at)
		ON CONFLICT (device_id) DO UPDATE SET school_id = EXCLUDED.school_id, class_id = EXCLUDED.class_id, bound_by = EXCLUDED.bound_by, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, binding); err != nil {
		return fmt.Errorf("upsert device binding: %w", err)
	}
	return nil
}
