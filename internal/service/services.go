package service

import (
	"context"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// ImportResult bundles the outcome of one full pipeline pass.
type ImportResult struct {
	Batch          *models.ClassifiedBatch
	Reconciliation models.ReconcileResult
}

// ImportService runs the validate-classify-reconcile pipeline over one
// uploaded table.
type ImportService interface {
	Process(ctx context.Context, input *models.Table) *ImportResult
}

// RunService records and serves import-run audit rows.
type RunService interface {
	Create(ctx context.Context, run *models.ImportRun) error
	Complete(ctx context.Context, run *models.ImportRun) error
	Get(ctx context.Context, id string) (*models.ImportRun, error)
}

// Services holds all service interfaces.
type Services struct {
	Import ImportService
	Runs   RunService
}

// NewServices creates all services.
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Import: newImportService(repos.Members, log),
		Runs:   newRunService(repos.Runs, log),
	}
}
