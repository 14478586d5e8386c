package models

import (
	"time"
)

// RunStatus represents the state of an import run.
type RunStatus string

const (
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// ImportRun is the audit record of one uploaded roster file. Processing is
// synchronous: the row is created when the upload is accepted and completed
// in the same request.
type ImportRun struct {
	ID             string     `json:"run_id" db:"id"`
	Filename       string     `json:"filename" db:"filename"`
	Status         RunStatus  `json:"status" db:"status"`
	TotalRecords   int        `json:"total_records" db:"total_records"`
	ValidRecords   int        `json:"valid_records" db:"valid_records"`
	InvalidRecords int        `json:"invalid_records" db:"invalid_records"`
	WarningRecords int        `json:"warning_records" db:"warning_records"`
	Inserted       int        `json:"inserted" db:"inserted_count"`
	Updated        int        `json:"updated" db:"updated_count"`
	Skipped        int        `json:"skipped" db:"skipped_count"`
	MetaInserted   int        `json:"meta_inserted" db:"meta_inserted_count"`
	MetaUpdated    int        `json:"meta_updated" db:"meta_updated_count"`
	DurationMs     int64      `json:"duration_ms,omitempty" db:"duration_ms"`
	ValidFile      string     `json:"valid_file,omitempty" db:"valid_file"`
	InvalidFile    string     `json:"invalid_file,omitempty" db:"invalid_file"`
	WarningFile    string     `json:"warning_file,omitempty" db:"warning_file"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
