package repository

import (
	"context"

	"github.com/roster-import-api/internal/database"
	"github.com/roster-import-api/internal/models"
)

// MemberStore provides transactional access to the persisted member store
// (wp_users plus wp_usermeta).
type MemberStore interface {
	// Begin opens one transaction for a whole reconciliation batch. All
	// writes of the batch go through the returned StoreBatch and are
	// committed together.
	Begin(ctx context.Context) (StoreBatch, error)
}

// StoreBatch is one open transaction against the member store. On
// PostgreSQL a failed statement poisons the whole transaction, so callers
// fence each record with Savepoint and discard a failed record with
// RollbackToSavepoint to keep the rest of the batch committable.
type StoreBatch interface {
	// UserByLogin returns the user with the given login, or (nil, nil)
	// when no such user exists.
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	// InsertUser creates a user and returns its new ID.
	InsertUser(ctx context.Context, user *models.User) (int64, error)
	// UpdateUserProfile rewrites the mutable profile fields of a user.
	UpdateUserProfile(ctx context.Context, id int64, email, displayName string, status int) error
	// MetaValues returns the existing meta key → value map for a user.
	MetaValues(ctx context.Context, userID int64) (map[string]string, error)
	InsertMeta(ctx context.Context, entry *models.MetaEntry) error
	UpdateMeta(ctx context.Context, entry *models.MetaEntry) error

	// Savepoint marks the start of one record's writes.
	Savepoint(ctx context.Context) error
	// RollbackToSavepoint undoes everything since the last Savepoint and
	// makes the transaction usable again after a failed statement.
	RollbackToSavepoint(ctx context.Context) error
	// ReleaseSavepoint drops the last savepoint, keeping its writes.
	ReleaseSavepoint(ctx context.Context) error

	Commit() error
	Rollback() error
}

// RunRepository persists import-run audit rows.
type RunRepository interface {
	Create(ctx context.Context, run *models.ImportRun) error
	Update(ctx context.Context, run *models.ImportRun) error
	// GetByID returns the run, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*models.ImportRun, error)
}

// Repositories holds all repository interfaces.
type Repositories struct {
	Members MemberStore
	Runs    RunRepository
}

// New creates all repositories with the given database connection.
func New(db *database.DB) *Repositories {
	return &Repositories{
		Members: NewMemberStore(db),
		Runs:    NewRunRepo(db),
	}
}
