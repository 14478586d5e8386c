package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roster-import-api/internal/config"
	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/service"
	"github.com/rs/zerolog"
)

// ImportHandler handles roster import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/imports. The uploaded CSV is validated,
// classified and reconciled synchronously; the response carries the full
// summary of the run.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	// Reject oversized uploads before the multipart body is buffered.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Import.MaxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster import requires a CSV file"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	table, err := ParseTable(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("could not parse CSV: %v", err)})
		return
	}

	run := &models.ImportRun{
		ID:       uuid.New().String(),
		Filename: header.Filename,
	}
	if err := h.saveUpload(run, data); err != nil {
		h.log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to archive uploaded file")
	}
	// The audit row is best-effort: the pipeline still runs and reports even
	// when the run cannot be recorded.
	if err := h.services.Runs.Create(ctx, run); err != nil {
		h.log.Error().Err(err).Msg("Failed to create import run")
	}

	result := h.services.Import.Process(ctx, table)
	batch := result.Batch
	tally := result.Reconciliation

	run.TotalRecords = table.Len()
	run.ValidRecords = batch.Valid.Len()
	run.InvalidRecords = batch.Invalid.Len()
	run.WarningRecords = batch.Warnings.Len()
	run.Inserted = tally.Inserted
	run.Updated = tally.Updated
	run.Skipped = tally.Skipped
	run.MetaInserted = tally.MetaInserted
	run.MetaUpdated = tally.MetaUpdated
	if tally.Processed == 0 && len(tally.Errors) > 0 {
		run.Status = models.RunStatusFailed
	}

	if err := h.writeOutputFiles(run, batch); err != nil {
		h.log.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to write output files")
	}

	if err := h.services.Runs.Complete(ctx, run); err != nil {
		h.log.Error().Err(err).Str("run_id", run.ID).Msg("Failed to finalize import run")
	}

	h.log.Info().
		Str("run_id", run.ID).
		Str("file", header.Filename).
		Int("total", run.TotalRecords).
		Int("valid", run.ValidRecords).
		Int("invalid", run.InvalidRecords).
		Int("warnings", run.WarningRecords).
		Msg("Import processed")

	c.JSON(http.StatusOK, models.ImportSummary{
		RunID:          run.ID,
		TotalRecords:   run.TotalRecords,
		ValidRecords:   run.ValidRecords,
		InvalidRecords: run.InvalidRecords,
		WarningRecords: run.WarningRecords,
		Columns:        table.Columns,
		InvalidReasons: batch.InvalidReasons,
		WarningReasons: batch.WarningReasons,
		Reconciliation: tally,
		ValidFile:      run.ValidFile,
		InvalidFile:    run.InvalidFile,
		WarningFile:    run.WarningFile,
	})
}

// saveUpload archives the raw uploaded CSV under the upload directory.
func (h *ImportHandler) saveUpload(run *models.ImportRun, data []byte) error {
	dir := h.cfg.Import.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s", run.ID[:8], filepath.Base(run.Filename))
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// writeOutputFiles saves the non-empty classified tables as downloadable
// CSVs and records their names on the run.
func (h *ImportHandler) writeOutputFiles(run *models.ImportRun, batch *models.ClassifiedBatch) error {
	dir := h.cfg.Import.DownloadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	ts := time.Now().Format("20060102_150405")
	prefix := run.ID[:8]

	if batch.Valid.Len() > 0 {
		name := fmt.Sprintf("%s_usuarios_validos_%s.csv", prefix, ts)
		if err := WriteTable(filepath.Join(dir, name), batch.Valid); err != nil {
			return err
		}
		run.ValidFile = name
	}
	if batch.Invalid.Len() > 0 {
		name := fmt.Sprintf("%s_usuarios_invalidos_%s.csv", prefix, ts)
		if err := WriteTable(filepath.Join(dir, name), batch.Invalid); err != nil {
			return err
		}
		run.InvalidFile = name
	}
	if batch.Warnings.Len() > 0 {
		name := fmt.Sprintf("%s_usuarios_advertencias_%s.csv", prefix, ts)
		if err := WriteTable(filepath.Join(dir, name), batch.Warnings); err != nil {
			return err
		}
		run.WarningFile = name
	}

	return nil
}

// GetImportStatus handles GET /v1/imports/:run_id
func (h *ImportHandler) GetImportStatus(c *gin.Context) {
	ctx := c.Request.Context()
	runID := c.Param("run_id")

	run, err := h.services.Runs.Get(ctx, runID)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", runID).Msg("Failed to get import run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get import run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// DownloadFile handles GET /v1/imports/:run_id/files/:kind where kind is
// one of valid, invalid, warnings.
func (h *ImportHandler) DownloadFile(c *gin.Context) {
	ctx := c.Request.Context()
	runID := c.Param("run_id")

	run, err := h.services.Runs.Get(ctx, runID)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", runID).Msg("Failed to get import run")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get import run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import run not found"})
		return
	}

	var name string
	switch c.Param("kind") {
	case "valid":
		name = run.ValidFile
	case "invalid":
		name = run.InvalidFile
	case "warnings":
		name = run.WarningFile
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of: valid, invalid, warnings"})
		return
	}
	if name == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no file of that kind for this run"})
		return
	}

	path := filepath.Join(h.cfg.Import.DownloadDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(path, name)
}
