package mocks

import (
	"context"
	"errors"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/repository"
)

// MockMemberStore is an in-memory implementation of MemberStore. Writes are
// staged per batch and only become visible after Commit, mirroring the one
// transaction per reconciliation run of the real store.
type MockMemberStore struct {
	Users  map[string]*models.User      // by login
	Meta   map[int64]map[string]string  // userID → key → value
	NextID int64

	// BeginErr makes Begin fail, simulating connectivity loss before the
	// transaction starts.
	BeginErr error
	// FailLogin makes every batch call for that login fail with FailErr.
	FailLogin string
	FailErr   error
	// FailMetaValue makes InsertMeta fail when writing that value, so a
	// record can fail after some of its writes already applied.
	FailMetaValue string

	Batches int
	Commits int
}

// NewMockMemberStore creates an empty mock store.
func NewMockMemberStore() *MockMemberStore {
	return &MockMemberStore{
		Users: make(map[string]*models.User),
		Meta:  make(map[int64]map[string]string),
	}
}

func (m *MockMemberStore) Begin(ctx context.Context) (repository.StoreBatch, error) {
	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Batches++
	return &mockBatch{
		store:  m,
		users:  cloneUsers(m.Users),
		meta:   cloneMeta(m.Meta),
		nextID: m.NextID,
	}, nil
}

// MetaFor returns the committed metadata of the user with the given login.
func (m *MockMemberStore) MetaFor(login string) map[string]string {
	user, ok := m.Users[login]
	if !ok {
		return nil
	}
	return m.Meta[user.ID]
}

// mockBatch models PostgreSQL transaction semantics: after any failed
// statement the batch is poisoned and every statement errors until
// RollbackToSavepoint restores the last savepoint.
type mockBatch struct {
	store  *MockMemberStore
	users  map[string]*models.User
	meta   map[int64]map[string]string
	nextID int64

	poisoned bool

	spUsers  map[string]*models.User
	spMeta   map[int64]map[string]string
	spNextID int64
}

var errFailedTx = errors.New("current transaction is aborted, commands ignored until end of transaction block")

// fail marks the batch poisoned and returns the triggering error.
func (b *mockBatch) fail(err error) error {
	b.poisoned = true
	return err
}

func (b *mockBatch) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	if b.poisoned {
		return nil, errFailedTx
	}
	if login == b.store.FailLogin {
		return nil, b.fail(b.store.FailErr)
	}
	user, ok := b.users[login]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (b *mockBatch) InsertUser(ctx context.Context, user *models.User) (int64, error) {
	if b.poisoned {
		return 0, errFailedTx
	}
	if user.Login == b.store.FailLogin {
		return 0, b.fail(b.store.FailErr)
	}
	b.nextID++
	copied := *user
	copied.ID = b.nextID
	b.users[user.Login] = &copied
	return copied.ID, nil
}

func (b *mockBatch) UpdateUserProfile(ctx context.Context, id int64, email, displayName string, status int) error {
	if b.poisoned {
		return errFailedTx
	}
	for _, user := range b.users {
		if user.ID == id {
			user.Email = email
			user.DisplayName = displayName
			user.Status = status
			return nil
		}
	}
	return nil
}

func (b *mockBatch) MetaValues(ctx context.Context, userID int64) (map[string]string, error) {
	if b.poisoned {
		return nil, errFailedTx
	}
	values := make(map[string]string, len(b.meta[userID]))
	for k, v := range b.meta[userID] {
		values[k] = v
	}
	return values, nil
}

func (b *mockBatch) InsertMeta(ctx context.Context, entry *models.MetaEntry) error {
	if b.poisoned {
		return errFailedTx
	}
	if b.store.FailMetaValue != "" && entry.Value == b.store.FailMetaValue {
		return b.fail(b.store.FailErr)
	}
	if b.meta[entry.UserID] == nil {
		b.meta[entry.UserID] = make(map[string]string)
	}
	b.meta[entry.UserID][entry.Key] = entry.Value
	return nil
}

func (b *mockBatch) UpdateMeta(ctx context.Context, entry *models.MetaEntry) error {
	if b.poisoned {
		return errFailedTx
	}
	if b.meta[entry.UserID] == nil {
		b.meta[entry.UserID] = make(map[string]string)
	}
	b.meta[entry.UserID][entry.Key] = entry.Value
	return nil
}

func (b *mockBatch) Savepoint(ctx context.Context) error {
	if b.poisoned {
		return errFailedTx
	}
	b.spUsers = cloneUsers(b.users)
	b.spMeta = cloneMeta(b.meta)
	b.spNextID = b.nextID
	return nil
}

func (b *mockBatch) RollbackToSavepoint(ctx context.Context) error {
	if b.spUsers == nil {
		return errors.New("no savepoint established")
	}
	b.users = cloneUsers(b.spUsers)
	b.meta = cloneMeta(b.spMeta)
	b.nextID = b.spNextID
	b.poisoned = false
	return nil
}

func (b *mockBatch) ReleaseSavepoint(ctx context.Context) error {
	if b.poisoned {
		return errFailedTx
	}
	return nil
}

func (b *mockBatch) Commit() error {
	if b.poisoned {
		return errFailedTx
	}
	b.store.Users = b.users
	b.store.Meta = b.meta
	b.store.NextID = b.nextID
	b.store.Commits++
	return nil
}

func (b *mockBatch) Rollback() error {
	return nil
}

func cloneUsers(in map[string]*models.User) map[string]*models.User {
	out := make(map[string]*models.User, len(in))
	for k, v := range in {
		copied := *v
		out[k] = &copied
	}
	return out
}

func cloneMeta(in map[int64]map[string]string) map[int64]map[string]string {
	out := make(map[int64]map[string]string, len(in))
	for id, kv := range in {
		copied := make(map[string]string, len(kv))
		for k, v := range kv {
			copied[k] = v
		}
		out[id] = copied
	}
	return out
}
