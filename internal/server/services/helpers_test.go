package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/server/auth"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/invitations"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// newTxDB returns a real handle whose connections and transactions carry no
// statements; the repositories under test are in-memory fakes.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", "#", "_", "?", "_", "@", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestHasher() *auth.Hasher {
	return auth.NewHasher(bcrypt.MinCost)
}

// memStore backs fake repositories with maps guarded by a mutex.
type memStore struct {
	mu          sync.Mutex
	users       []*models.User
	invitations map[uuid.UUID]*models.Invitation

	usersErr       error
	invitationsErr error
}

func newMemStore() *memStore {
	return &memStore{invitations: map[uuid.UUID]*models.Invitation{}}
}

func (s *memStore) addInvitation(inv *models.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.invitations[inv.ID] = &cp
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	for _, x := range r.s.users {
		if x.Email == u.Email {
			return nil, fmt.Errorf("db error: %w", common.ErrConstraintViolated)
		}
	}
	cp := *u
	r.s.users = append(r.s.users, &cp)
	out := cp
	return &out, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usersErr != nil {
		return nil, r.s.usersErr
	}
	var out []*models.User
	for _, x := range r.s.users {
		if x.Email == email {
			cp := *x
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memInvitations struct{ s *memStore }

func (r memInvitations) Create(_ context.Context, inv *models.Invitation) (*models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.invitationsErr != nil {
		return nil, r.s.invitationsErr
	}
	if _, ok := r.s.invitations[inv.ID]; ok {
		return nil, fmt.Errorf("db error: %w", common.ErrConstraintViolated)
	}
	cp := *inv
	r.s.invitations[inv.ID] = &cp
	out := cp
	return &out, nil
}

func (r memInvitations) Find(_ context.Context, id uuid.UUID) (*models.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.invitationsErr != nil {
		return nil, r.s.invitationsErr
	}
	inv, ok := r.s.invitations[id]
	if !ok {
		return nil, fmt.Errorf("db error: %w", common.ErrorNotFound)
	}
	cp := *inv
	return &cp, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return memUsers{m.s} }
func (m *fakeRepoManager) Invitations(dbx.DBTX) invitations.Repository  { return memInvitations{m.s} }

// countingHasher records how often Verify runs and can fail Hash.
type countingHasher struct {
	PasswordHasher
	mu       sync.Mutex
	verifies int
	hashErr  error
}

func (h *countingHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.PasswordHasher.Hash(plain)
}

func (h *countingHasher) Verify(plain, stored string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.PasswordHasher.Verify(plain, stored)
}

// statsHasher records how many pooled connections are in use while hashing.
type statsHasher struct {
	PasswordHasher
	db     *sql.DB
	hashed bool
	inUse  int
}

func (h *statsHasher) Hash(plain string) (string, error) {
	h.hashed = true
	h.inUse = h.db.Stats().InUse
	return h.PasswordHasher.Hash(plain)
}
