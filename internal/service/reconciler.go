package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// Reconciler upserts classified-valid roster records into the member store.
type Reconciler struct {
	store repository.MemberStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewReconciler creates a new Reconciler.
func NewReconciler(store repository.MemberStore, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		store: store,
		log:   log.With().Str("service", "reconcile").Logger(),
		now:   time.Now,
	}
}

// Reconcile writes every valid record through one transaction. A row-level
// data error is recorded with the offending identifier and the loop moves
// on; a connection-class failure rolls the whole batch back and returns a
// zeroed tally with a single batch-level error.
func (r *Reconciler) Reconcile(ctx context.Context, valid *models.Table) models.ReconcileResult {
	var res models.ReconcileResult

	batch, err := r.store.Begin(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("Could not open store transaction")
		res.Errors = append(res.Errors, fmt.Sprintf("no se pudo conectar con la base de datos: %v", err))
		return res
	}
	// No-op after a successful commit.
	defer batch.Rollback()

	for _, row := range valid.Rows {
		login := strings.ToUpper(strings.TrimSpace(row[models.ColDNI]))
		res.Processed++

		// Fence each record with a savepoint: a failed statement poisons
		// the transaction until rolled back to it, and already-applied
		// rows must survive to commit.
		if err := batch.Savepoint(ctx); err != nil {
			return r.abort(batch, login, err)
		}

		var delta models.ReconcileResult
		if err := r.reconcileRow(ctx, batch, login, row, &delta); err != nil {
			if isConnFatal(err) {
				return r.abort(batch, login, err)
			}
			if rbErr := batch.RollbackToSavepoint(ctx); rbErr != nil {
				return r.abort(batch, login, rbErr)
			}
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", login, err))
			continue
		}
		if err := batch.ReleaseSavepoint(ctx); err != nil {
			return r.abort(batch, login, err)
		}

		res.Inserted += delta.Inserted
		res.Updated += delta.Updated
		res.Skipped += delta.Skipped
		res.MetaInserted += delta.MetaInserted
		res.MetaUpdated += delta.MetaUpdated
	}

	if err := batch.Commit(); err != nil {
		r.log.Error().Err(err).Msg("Commit failed")
		return models.ReconcileResult{
			Errors: []string{fmt.Sprintf("transacción abortada: %v", err)},
		}
	}

	r.log.Info().
		Int("processed", res.Processed).
		Int("inserted", res.Inserted).
		Int("updated", res.Updated).
		Int("skipped", res.Skipped).
		Int("meta_inserted", res.MetaInserted).
		Int("meta_updated", res.MetaUpdated).
		Int("errors", len(res.Errors)).
		Msg("Reconciliation committed")

	return res
}

// abort rolls the batch back and returns a zeroed tally with a single
// batch-level error.
func (r *Reconciler) abort(batch repository.StoreBatch, login string, err error) models.ReconcileResult {
	r.log.Error().Err(err).Str("login", login).Msg("Batch aborted, rolling back")
	batch.Rollback()
	return models.ReconcileResult{
		Errors: []string{fmt.Sprintf("transacción abortada: %v", err)},
	}
}

func (r *Reconciler) reconcileRow(ctx context.Context, batch repository.StoreBatch, login string, row models.Record, res *models.ReconcileResult) error {
	email := row[models.ColEmail]
	phone := row[models.ColPhone]

	user, err := batch.UserByLogin(ctx, login)
	if err != nil {
		return err
	}

	switch {
	case user == nil:
		user = &models.User{
			Login:        login,
			PasswordHash: models.PlaceholderPasswordHash,
			Nicename:     login,
			Email:        email,
			DisplayName:  login,
			Status:       models.StatusActive,
			RegisteredAt: r.now(),
		}
		id, err := batch.InsertUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		res.Inserted++
	case user.Email != email || user.DisplayName != login || user.Status != models.StatusActive:
		if err := batch.UpdateUserProfile(ctx, user.ID, email, login, models.StatusActive); err != nil {
			return err
		}
		res.Updated++
	default:
		// Reprocessing an unchanged record is a no-op write.
		res.Skipped++
	}

	existing, err := batch.MetaValues(ctx, user.ID)
	if err != nil {
		return err
	}

	for _, entry := range memberMeta(user.ID, login, phone) {
		entry := entry
		current, ok := existing[entry.Key]
		if !ok {
			if err := batch.InsertMeta(ctx, &entry); err != nil {
				return err
			}
			res.MetaInserted++
			continue
		}
		// Only the phone follows the roster after first import; the other
		// keys are initialized once and then left alone.
		if entry.Key == models.MetaKeyPhone && current != entry.Value {
			if err := batch.UpdateMeta(ctx, &entry); err != nil {
				return err
			}
			res.MetaUpdated++
		}
	}

	return nil
}

// memberMeta is the fixed metadata set reconciled for every imported user.
func memberMeta(userID int64, login, phone string) []models.MetaEntry {
	return []models.MetaEntry{
		{UserID: userID, Key: models.MetaKeyNickname, Value: login},
		{UserID: userID, Key: models.MetaKeyDNI, Value: login},
		{UserID: userID, Key: models.MetaKeyPhone, Value: phone},
		{UserID: userID, Key: models.MetaKeyOldUser, Value: "1"},
		{UserID: userID, Key: models.MetaKeyCapabilities, Value: models.SubscriberCapabilities},
		{UserID: userID, Key: models.MetaKeyUserLevel, Value: "0"},
		{UserID: userID, Key: models.MetaKeyAdminBar, Value: "false"},
	}
}

// isConnFatal reports whether err means the connection or transaction is
// unusable, as opposed to a data error on a single row.
func isConnFatal(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		// Connection exceptions, invalid transaction state, operator
		// intervention, system errors.
		case "08", "25", "57", "58", "XX":
			return true
		}
	}
	return false
}
