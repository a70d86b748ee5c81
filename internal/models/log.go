package models

import "time"

// RoutineLog is one completion record. DateKey is the local day the
// completion counts towards and may differ from CompletedAt when backfilled.
type RoutineLog struct {
	ID              string    `json:"id"`
	RoutineID       string    `json:"routine_id"`
	CompletedAt     time.Time `json:"completed_at"`
	DateKey         string    `json:"date_key"` // YYYY-MM-DD format
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	Note            string    `json:"note,omitempty"`
}
