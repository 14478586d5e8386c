package service

import (
	"context"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// importService is the concrete implementation of ImportService.
type importService struct {
	reconciler *Reconciler
	log        zerolog.Logger
}

func newImportService(store repository.MemberStore, log zerolog.Logger) *importService {
	return &importService{
		reconciler: NewReconciler(store, log),
		log:        log.With().Str("service", "import").Logger(),
	}
}

// Process classifies the whole table in one pass, then reconciles the valid
// stream against the member store. The call is synchronous: it returns only
// when classification and persistence are both done.
func (s *importService) Process(ctx context.Context, input *models.Table) *ImportResult {
	batch := Classify(input)

	s.log.Info().
		Int("total", input.Len()).
		Int("valid", batch.Valid.Len()).
		Int("invalid", batch.Invalid.Len()).
		Int("warnings", batch.Warnings.Len()).
		Msg("Batch classified")

	tally := s.reconciler.Reconcile(ctx, batch.Valid)

	return &ImportResult{
		Batch:          batch,
		Reconciliation: tally,
	}
}
