package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akosarev/notekeeper/internal/common"
	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/logging"
	"github.com/akosarev/notekeeper/internal/server/config"
	"github.com/akosarev/notekeeper/internal/server/models"
	notesrepo "github.com/akosarev/notekeeper/internal/server/repositories/notes"
	refreshrepo "github.com/akosarev/notekeeper/internal/server/repositories/refreshtokens"
	"github.com/akosarev/notekeeper/internal/server/repositories/repomanager"
	usersrepo "github.com/akosarev/notekeeper/internal/server/repositories/users"
	"github.com/akosarev/notekeeper/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testPassword = "Sup3rSecret!"

// in-memory repositories backing the handler tests

type fakeUsersRepo struct {
	users map[string]*models.User
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
	notes map[string]*models.Note
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

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository           { return m.n }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshrepo.Repository { return m.r }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// fixture bundles a running test server with its backing fakes.
type fixture struct {
	ts   *httptest.Server
	mock sqlmock.Sqlmock
	m    *fakeRepoManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	m := &fakeRepoManager{
		u: &fakeUsersRepo{users: map[string]*models.User{}},
		n: &fakeNotesRepo{notes: map[string]*models.Note{}},
		r: &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}},
	}

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	us := services.NewUserService(db, m, cfg)
	ns := services.NewNoteService(db, m)
	srv := NewServer(":0", logger, us, ns, cfg.SecretKey)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &fixture{ts: ts, mock: mock, m: m}
}

func (f *fixture) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, f.ts.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	fields := map[string]json.RawMessage{}
	if len(data) > 0 {
		var probe any
		require.NoError(t, json.Unmarshal(data, &probe), "body: %s", data)
		if _, isObject := probe.(map[string]any); isObject {
			require.NoError(t, json.Unmarshal(data, &fields))
		} else {
			fields["_raw"] = data
		}
	}
	return resp, fields
}

func (f *fixture) message(t *testing.T, fields map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(fields["message"], &msg))
	return msg
}

// signupAndLogin registers a user over the API and returns its access token
// together with the stored user id.
func (f *fixture) signupAndLogin(t *testing.T, username string) (token, userID string) {
	t.Helper()

	resp, _ := f.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, fields := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var access string
	require.NoError(t, json.Unmarshal(fields["access_token"], &access))

	u, err := f.m.u.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return access, u.ID
}
