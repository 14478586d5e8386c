package repository

import (
	"context"
	"database/sql"

	"github.com/roster-import-api/internal/database"
	"github.com/roster-import-api/internal/models"
)

// memberStore is the PostgreSQL implementation of MemberStore.
type memberStore struct {
	db *database.DB
}

// NewMemberStore creates a new member store backed by the given connection.
func NewMemberStore(db *database.DB) MemberStore {
	return &memberStore{db: db}
}

// Begin opens the single transaction a reconciliation batch runs in.
func (s *memberStore) Begin(ctx context.Context) (StoreBatch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &memberBatch{tx: tx}, nil
}

// memberBatch stages all writes of one batch through a single transaction.
type memberBatch struct {
	tx *sql.Tx
}

func (b *memberBatch) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT id, user_login, user_pass, user_nicename, user_email, display_name, user_status, user_registered
		FROM wp_users WHERE user_login = $1
	`
	var user models.User
	err := b.tx.QueryRowContext(ctx, query, login).Scan(
		&user.ID, &user.Login, &user.PasswordHash, &user.Nicename,
		&user.Email, &user.DisplayName, &user.Status, &user.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (b *memberBatch) InsertUser(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO wp_users (user_login, user_pass, user_nicename, user_email, display_name, user_status, user_registered)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := b.tx.QueryRowContext(ctx, query,
		user.Login, user.PasswordHash, user.Nicename, user.Email,
		user.DisplayName, user.Status, user.RegisteredAt,
	).Scan(&id)
	return id, err
}

func (b *memberBatch) UpdateUserProfile(ctx context.Context, id int64, email, displayName string, status int) error {
	query := `UPDATE wp_users SET user_email = $1, display_name = $2, user_status = $3 WHERE id = $4`
	_, err := b.tx.ExecContext(ctx, query, email, displayName, status, id)
	return err
}

func (b *memberBatch) MetaValues(ctx context.Context, userID int64) (map[string]string, error) {
	rows, err := b.tx.QueryContext(ctx,
		"SELECT meta_key, meta_value FROM wp_usermeta WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

func (b *memberBatch) InsertMeta(ctx context.Context, entry *models.MetaEntry) error {
	query := `INSERT INTO wp_usermeta (user_id, meta_key, meta_value) VALUES ($1, $2, $3)`
	_, err := b.tx.ExecContext(ctx, query, entry.UserID, entry.Key, entry.Value)
	return err
}

func (b *memberBatch) UpdateMeta(ctx context.Context, entry *models.MetaEntry) error {
	query := `UPDATE wp_usermeta SET meta_value = $1 WHERE user_id = $2 AND meta_key = $3`
	_, err := b.tx.ExecContext(ctx, query, entry.Value, entry.UserID, entry.Key)
	return err
}

// Reusing the same name replaces the previous savepoint, so one name per
// batch is enough.
const recordSavepoint = "record_sp"

func (b *memberBatch) Savepoint(ctx context.Context) error {
	_, err := b.tx.ExecContext(ctx, "SAVEPOINT "+recordSavepoint)
	return err
}

func (b *memberBatch) RollbackToSavepoint(ctx context.Context) error {
	_, err := b.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+recordSavepoint)
	return err
}

func (b *memberBatch) ReleaseSavepoint(ctx context.Context) error {
	_, err := b.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+recordSavepoint)
	return err
}

func (b *memberBatch) Commit() error {
	return b.tx.Commit()
}

func (b *memberBatch) Rollback() error {
	return b.tx.Rollback()
}
