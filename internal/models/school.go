package models

import "time"

// School represents an institution a tablet can be configured for.
type School struct {
	ID        string    `db:"id" json:"id"`
	CycleID   string    `db:"cycle_id" json:"cycle_id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Grade represents a school level within a cycle (e.g. 6e, 5e).
type Grade struct {
	ID      string `db:"id" json:"id"`
	CycleID string `db:"cycle_id" json:"cycle_id"`
	Name    string `db:"name" json:"name"`
}
