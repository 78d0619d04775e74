package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studybuddy/internal/app/migrations"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
	"github.com/yigit/studybuddy/internal/db"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/auth"
	"github.com/yigit/studybuddy/internal/pkg/filestorage"
	"github.com/yigit/studybuddy/internal/pkg/session"
)

type testEnv struct {
	database  *db.Database
	repos     *repositories.Repositories
	storage   *filestorage.LocalStorage
	auth      AuthService
	requests  StudyRequestService
	notes     NoteService
	timetable TimetableService
	dashboard DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	database, err := db.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.NewMigrator(database.SQL, database.Driver, database.Placeholder(), zerolog.Nop()).Migrate(ctx))

	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repos := repositories.NewRepositories(database)
	tokens := auth.NewSessionTokenService(auth.SessionTokenConfig{
		SecretKey:   "test-secret",
		TTL:         time.Hour,
		TokenIssuer: "studybuddy",
	})

	users := NewUserService(repos.UserRepository)
	requests := NewStudyRequestService(repos.StudyRequestRepository, zerolog.Nop())
	notes := NewNoteService(repos.NoteRepository, storage, zerolog.Nop())
	timetable := NewTimetableService(repos.TimetableRepository, zerolog.Nop())

	return &testEnv{
		database:  database,
		repos:     repos,
		storage:   storage,
		auth:      NewAuthService(repos.UserRepository, tokens, session.NewMemoryStore(), zerolog.Nop()),
		requests:  requests,
		notes:     notes,
		timetable: timetable,
		dashboard: NewDashboardService(users, requests, notes, timetable),
	}
}

func registerRequest(username, regNo string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:           username,
		Email:              username + "@vitstudent.ac.in",
		Password:           "s3cret-pass",
		FullName:           "Student " + username,
		RegistrationNumber: regNo,
		Program:            "B.Tech CSE",
		Year:               3,
		Subjects:           []string{"DBMS"},
	}
}

func (e *testEnv) register(t *testing.T, username, regNo string) *SessionGrant {
	t.Helper()
	grant, err := e.auth.Register(context.Background(), registerRequest(username, regNo))
	require.NoError(t, err)
	return grant
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	grant := env.register(t, "priya", "21BCE1001")
	assert.NotEmpty(t, grant.Token)
	assert.Equal(t, "priya", grant.User.Username)

	identity, err := env.auth.Authenticate(ctx, grant.Token)
	require.NoError(t, err)
	assert.Equal(t, grant.User.ID, identity.UserID)
	assert.Equal(t, "priya", identity.Username)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "priya", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEqual(t, grant.Identity.SessionID, login.Identity.SessionID)

	require.NoError(t, env.auth.Logout(ctx, identity))

	_, err = env.auth.Authenticate(ctx, grant.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// the second session is unaffected
	_, err = env.auth.Authenticate(ctx, login.Token)
	assert.NoError(t, err)
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "arjun", "21BCE1002")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "arjun", "not-it"},
		{"unknown user", "nobody", "s3cret-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(context.Background(), &dto.LoginRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	grant := env.register(t, "meera", "21BCE1003")

	for _, token := range []string{"", "garbage", grant.Token + "x"} {
		_, err := env.auth.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "token %q", token)
	}
}

func TestAuthService_ExpiredTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	expiring := NewAuthService(env.repos.UserRepository, auth.NewSessionTokenService(auth.SessionTokenConfig{
		SecretKey:   "test-secret",
		TTL:         -time.Minute,
		TokenIssuer: "studybuddy",
	}), session.NewMemoryStore(), zerolog.Nop())

	grant, err := expiring.Register(context.Background(), registerRequest("rohan", "21BCE1010"))
	require.NoError(t, err)

	_, err = expiring.Authenticate(context.Background(), grant.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "kiran", "21BCE1004")

	_, err := env.auth.Register(context.Background(), registerRequest("kiran", "21BCE9999"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, repositories.MsgUserExists, err.Error())
}

func TestNoteService_UploadSanitizesName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "divya", "21BCE1005")

	note, err := env.notes.Upload(context.Background(), owner.User.ID, &NoteUpload{
		Title:    "Passwd",
		Subject:  "OS",
		Filename: "../../etc/passwd.txt",
		Content:  strings.NewReader("root:x:0:0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "etc_passwd.txt", note.Filename)
	assert.Equal(t, env.storage.BasePath(), filepath.Dir(note.FilePath))
	assert.True(t, strings.HasSuffix(note.FilePath, "_etc_passwd.txt"))
	assert.NotContains(t, filepath.Base(note.FilePath), "..")
	assert.Equal(t, "Student divya", note.UploaderName)

	content, err := os.ReadFile(note.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "root:x:0:0", string(content))

	entries, err := os.ReadDir(env.storage.BasePath())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNoteService_UploadRejections(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "rahul", "21BCE1006")

	tests := []struct {
		name     string
		upload   *NoteUpload
		sentinel error
		message  string
	}{
		{
			name:     "missing content",
			upload:   &NoteUpload{Title: "t", Subject: "s", Filename: "a.pdf"},
			sentinel: apperrors.ErrFileMissing,
			message:  MsgNoFileProvided,
		},
		{
			name:     "empty filename",
			upload:   &NoteUpload{Title: "t", Subject: "s", Filename: "", Content: strings.NewReader("x")},
			sentinel: apperrors.ErrFileEmpty,
			message:  MsgNoFileSelected,
		},
		{
			name:     "empty file",
			upload:   &NoteUpload{Title: "t", Subject: "s", Filename: "a.pdf", Content: strings.NewReader("")},
			sentinel: apperrors.ErrFileEmpty,
			message:  MsgNoFileSelected,
		},
		{
			name:     "unusable filename",
			upload:   &NoteUpload{Title: "t", Subject: "s", Filename: "日本語", Content: strings.NewReader("x")},
			sentinel: apperrors.ErrInvalidFilename,
			message:  MsgInvalidFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.notes.Upload(context.Background(), owner.User.ID, tt.upload)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
		})
	}

	notes, err := env.notes.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)

	entries, err := os.ReadDir(env.storage.BasePath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNoteService_UploadDiscardsFileWhenRowFails(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "sneha", "21BCE1007")

	require.NoError(t, env.database.Close())

	_, err := env.notes.Upload(context.Background(), owner.User.ID, &NoteUpload{
		Title:    "Graphs",
		Subject:  "DSA",
		Filename: "graphs.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
	})
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	entries, err := os.ReadDir(env.storage.BasePath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// collidingStorage takes the final name just before the commit
type collidingStorage struct {
	*filestorage.LocalStorage
}

func (s collidingStorage) Commit(staged *filestorage.StagedFile, storedName string) (string, error) {
	if err := os.WriteFile(s.PathFor(storedName), []byte("already here"), 0o644); err != nil {
		return "", err
	}
	return s.LocalStorage.Commit(staged, storedName)
}

func TestNoteService_UploadUndoesRowWhenCommitCollides(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "farah", "21BCE1011")
	notes := NewNoteService(env.repos.NoteRepository, collidingStorage{env.storage}, zerolog.Nop())

	_, err := notes.Upload(context.Background(), owner.User.ID, &NoteUpload{
		Title:    "Heaps",
		Subject:  "DSA",
		Filename: "heaps.pdf",
		Content:  strings.NewReader("%PDF-1.4"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	var rows int
	require.NoError(t, env.database.SQL.QueryRow("SELECT COUNT(*) FROM notes").Scan(&rows))
	assert.Zero(t, rows)

	entries, err := os.ReadDir(env.storage.BasePath())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".staging-"))
	content, err := os.ReadFile(filepath.Join(env.storage.BasePath(), entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "already here", string(content))
}

func TestTimetableService_SaveTwiceKeepsOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "vikram", "21BCE1008")

	require.NoError(t, env.timetable.Save(ctx, owner.User.ID, json.RawMessage(`{"mon": ["DBMS"]}`)))
	require.NoError(t, env.timetable.Save(ctx, owner.User.ID, json.RawMessage(`{"tue": ["OS", "CN"]}`)))

	count, err := env.repos.TimetableRepository.CountByUserID(ctx, owner.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := env.timetable.Get(ctx, owner.User.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tue": ["OS", "CN"]}`, string(got.Schedule))

	err = env.timetable.Save(ctx, owner.User.ID, json.RawMessage(`{"broken"`))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDashboardService_ExcludesOwnRequests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "21BCE1009")
	bob := env.register(t, "bob", "21BCE1010")

	_, err := env.requests.Create(ctx, alice.User.ID, &dto.CreateStudyRequestRequest{
		Subject: "Compilers", Topic: "LR parsing", Location: "Library",
	})
	require.NoError(t, err)

	aliceView, err := env.dashboard.Build(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceView.StudyRequests)
	assert.Nil(t, aliceView.Timetable)

	bobView, err := env.dashboard.Build(ctx, bob.User.ID)
	require.NoError(t, err)
	require.Len(t, bobView.StudyRequests, 1)
	assert.Equal(t, "Compilers", bobView.StudyRequests[0].Subject)
	assert.Equal(t, "Student alice", bobView.StudyRequests[0].FullName)
	assert.Equal(t, "bob", bobView.User.Username)

	mine, err := env.requests.ListMine(ctx, alice.User.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

type stubAssistant struct {
	answer string
	err    error
	calls  int
}

func (s *stubAssistant) Ask(context.Context, string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestAssistantService_Fallback(t *testing.T) {
	tests := []struct {
		name      string
		client    *stubAssistant
		question  string
		want      string
		wantCalls int
	}{
		{"answer passes through", &stubAssistant{answer: " Use Dijkstra. "}, "shortest path?", "Use Dijkstra.", 1},
		{"upstream error", &stubAssistant{err: errors.New("quota exceeded")}, "hi", FallbackAnswer, 1},
		{"empty answer", &stubAssistant{answer: "  "}, "hi", FallbackAnswer, 1},
		{"blank question is not forwarded", &stubAssistant{answer: "unused"}, "   ", FallbackAnswer, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssistantService(tt.client, zerolog.Nop())
			assert.Equal(t, tt.want, svc.Ask(context.Background(), 1, tt.question))
			assert.Equal(t, tt.wantCalls, tt.client.calls)
		})
	}
}

func TestAssistantService_Unconfigured(t *testing.T) {
	svc := NewAssistantService(nil, zerolog.Nop())
	assert.Equal(t, FallbackAnswer, svc.Ask(context.Background(), 1, "anything"))
}
