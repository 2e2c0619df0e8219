package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akosarev/notekeeper/internal/common"
	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/server/models"
	notesrepo "github.com/akosarev/notekeeper/internal/server/repositories/notes"
	refreshrepo "github.com/akosarev/notekeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/akosarev/notekeeper/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- in-memory fakes shared by the service tests ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	users map[string]*models.User // keyed by id
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) add(username string) *models.User {
	u := &models.User{ID: uuid.NewString(), Username: username, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return nil, common.ErrAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeNotesRepo struct {
	notes map[string]*models.Note // keyed by id
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range f.notes {
		if n.UserID == ownerID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotesRepo) SearchByTitle(ctx context.Context, ownerID, text string) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range f.notes {
		if n.UserID == ownerID && strings.Contains(n.Title, text) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	for _, n := range f.notes {
		if n.UserID == note.UserID && n.Title == note.Title {
			return nil, common.ErrAlreadyExists
		}
	}
	note.ID = uuid.NewString()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	existing, ok := f.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return nil, common.ErrNotFound
	}
	for _, n := range f.notes {
		if n.ID != note.ID && n.UserID == note.UserID && n.Title == note.Title {
			return nil, common.ErrAlreadyExists
		}
	}
	existing.Title = note.Title
	existing.Content = note.Content
	existing.UpdatedAt = time.Now()
	return note, nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return false, nil
	}
	delete(f.notes, id)
	return true, nil
}

func (f *fakeNotesRepo) UpdateOwner(ctx context.Context, id, ownerID, newOwnerID string) error {
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return common.ErrNotFound
	}
	for _, other := range f.notes {
		if other.ID != id && other.UserID == newOwnerID && other.Title == n.Title {
			return common.ErrAlreadyExists
		}
	}
	n.UserID = newOwnerID
	return nil
}

type fakeRefreshRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.tokens[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Expires:   time.Now().Add(validity),
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
	r *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		n: newFakeNotesRepo(),
		r: newFakeRefreshRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository             { return m.n }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshrepo.Repository   { return m.r }
