package service

import (
	"context"
	"time"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// runService is the concrete implementation of RunService.
type runService struct {
	runs repository.RunRepository
	log  zerolog.Logger
}

func newRunService(runs repository.RunRepository, log zerolog.Logger) *runService {
	return &runService{
		runs: runs,
		log:  log.With().Str("service", "runs").Logger(),
	}
}

// Create records a freshly accepted upload as a processing run.
func (s *runService) Create(ctx context.Context, run *models.ImportRun) error {
	run.Status = models.RunStatusProcessing
	run.CreatedAt = time.Now()
	if err := s.runs.Create(ctx, run); err != nil {
		return err
	}
	s.log.Info().Str("run_id", run.ID).Str("filename", run.Filename).Msg("Import run created")
	return nil
}

// Complete finalizes the run's counters and duration.
func (s *runService) Complete(ctx context.Context, run *models.ImportRun) error {
	now := time.Now()
	run.CompletedAt = &now
	run.DurationMs = now.Sub(run.CreatedAt).Milliseconds()
	if run.Status == models.RunStatusProcessing {
		run.Status = models.RunStatusCompleted
	}
	if err := s.runs.Update(ctx, run); err != nil {
		return err
	}
	s.log.Info().
		Str("run_id", run.ID).
		Str("status", string(run.Status)).
		Int("total", run.TotalRecords).
		Int64("duration_ms", run.DurationMs).
		Msg("Import run completed")
	return nil
}

// Get returns the stored run, or nil when unknown.
func (s *runService) Get(ctx context.Context, id string) (*models.ImportRun, error) {
	return s.runs.GetByID(ctx, id)
}
