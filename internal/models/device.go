package models

import "time"

// DeviceBinding ties a tablet to the class it was configured for by a
// director. A device carries at most one binding.
type DeviceBinding struct {
	DeviceID  string    `db:"device_id" json:"device_id"`
	SchoolID  string    `db:"school_id" json:"school_id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	BoundBy   string    `db:"bound_by" json:"bound_by"`
	BoundAt   time.Time `db:"bound_at" json:"bound_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
