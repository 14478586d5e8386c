package repository

import (
	"context"
	"database/sql"

	"github.com/roster-import-api/internal/database"
	"github.com/roster-import-api/internal/models"
)

// runRepo is the concrete implementation of RunRepository.
type runRepo struct {
	db *database.DB
}

// NewRunRepo creates a new import-run repository.
func NewRunRepo(db *database.DB) RunRepository {
	return &runRepo{db: db}
}

// Create inserts a new import run.
func (r *runRepo) Create(ctx context.Context, run *models.ImportRun) error {
	query := `
		INSERT INTO import_runs (id, filename, status, total_records, valid_records, invalid_records,
			warning_records, inserted_count, updated_count, skipped_count, meta_inserted_count,
			meta_updated_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.Filename, run.Status, run.TotalRecords, run.ValidRecords, run.InvalidRecords,
		run.WarningRecords, run.Inserted, run.Updated, run.Skipped, run.MetaInserted,
		run.MetaUpdated, run.CreatedAt,
	)
	return err
}

// Update rewrites the run's status, counters and output file names.
func (r *runRepo) Update(ctx context.Context, run *models.ImportRun) error {
	query := `
		UPDATE import_runs SET
			status = $1, total_records = $2, valid_records = $3, invalid_records = $4,
			warning_records = $5, inserted_count = $6, updated_count = $7, skipped_count = $8,
			meta_inserted_count = $9, meta_updated_count = $10, duration_ms = $11,
			valid_file = $12, invalid_file = $13, warning_file = $14, completed_at = $15
		WHERE id = $16
	`
	_, err := r.db.ExecContext(ctx, query,
		run.Status, run.TotalRecords, run.ValidRecords, run.InvalidRecords,
		run.WarningRecords, run.Inserted, run.Updated, run.Skipped,
		run.MetaInserted, run.MetaUpdated, run.DurationMs,
		nullString(run.ValidFile), nullString(run.InvalidFile), nullString(run.WarningFile),
		run.CompletedAt, run.ID,
	)
	return err
}

// GetByID retrieves an import run by ID.
func (r *runRepo) GetByID(ctx context.Context, id string) (*models.ImportRun, error) {
	query := `
		SELECT id, filename, status, total_records, valid_records, invalid_records, warning_records,
			inserted_count, updated_count, skipped_count, meta_inserted_count, meta_updated_count,
			duration_ms, valid_file, invalid_file, warning_file, created_at, completed_at
		FROM import_runs WHERE id = $1
	`

	var run models.ImportRun
	var validFile, invalidFile, warningFile sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Filename, &run.Status, &run.TotalRecords, &run.ValidRecords,
		&run.InvalidRecords, &run.WarningRecords, &run.Inserted, &run.Updated,
		&run.Skipped, &run.MetaInserted, &run.MetaUpdated, &run.DurationMs,
		&validFile, &invalidFile, &warningFile, &run.CreatedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run.ValidFile = validFile.String
	run.InvalidFile = invalidFile.String
	run.WarningFile = warningFile.String
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return &run, nil
}

// nullString converts an empty string to a NULL database value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
