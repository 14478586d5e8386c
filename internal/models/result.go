package models

// ClassifiedBatch holds the three disjoint output streams of one
// classification pass plus the reason frequencies for reporting. A valid
// record with a bad email appears in Valid and, as an annotated copy, in
// Warnings; warnings never block persistence.
type ClassifiedBatch struct {
	Valid    *Table
	Invalid  *Table
	Warnings *Table

	InvalidReasons map[string]int
	WarningReasons map[string]int
}

// ReconcileResult tallies the outcome of one reconciliation batch. Errors
// holds per-record store errors (with the offending identifier) or, after a
// batch-level failure, a single abort message with all write counters zeroed.
type ReconcileResult struct {
	Processed    int      `json:"processed"`
	Inserted     int      `json:"inserted"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	MetaInserted int      `json:"meta_inserted"`
	MetaUpdated  int      `json:"meta_updated"`
	Errors       []string `json:"errors,omitempty"`
}

// ImportSummary is the API response for a completed import.
type ImportSummary struct {
	RunID          string          `json:"run_id"`
	TotalRecords   int             `json:"total_records"`
	ValidRecords   int             `json:"valid_records"`
	InvalidRecords int             `json:"invalid_records"`
	WarningRecords int             `json:"warning_records"`
	Columns        []string        `json:"columns"`
	InvalidReasons map[string]int  `json:"invalid_reasons"`
	WarningReasons map[string]int  `json:"warning_reasons"`
	Reconciliation ReconcileResult `json:"reconciliation"`
	ValidFile      string          `json:"valid_file,omitempty"`
	InvalidFile    string          `json:"invalid_file,omitempty"`
	WarningFile    string          `json:"warning_file,omitempty"`
}
