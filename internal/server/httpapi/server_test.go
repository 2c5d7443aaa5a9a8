package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dsmirnovs/notekeeper/internal/logging"
	"github.com/dsmirnovs/notekeeper/internal/server/auth"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
	"github.com/dsmirnovs/notekeeper/internal/server/services"
)

const testSecret = "test-secret"

type fakeUserSvc struct {
	registerFunc func(ctx context.Context, username string, email string, password string) (*models.User, error)
	loginFunc    func(ctx context.Context, email string, password string) (*services.LoginResult, error)
}

func (f *fakeUserSvc) Register(ctx context.Context, username string, email string, password string) (*models.User, error) {
	return f.registerFunc(ctx, username, email, password)
}

func (f *fakeUserSvc) Login(ctx context.Context, email string, password string) (*services.LoginResult, error) {
	return f.loginFunc(ctx, email, password)
}

type fakeNoteSvc struct {
	createFunc func(ctx context.Context, ownerID string, title string, content string, category *string) (*models.Note, error)
	getFunc    func(ctx context.Context, ownerID string, noteID string) (*models.Note, error)
	updateFunc func(ctx context.Context, ownerID string, noteID string, patch models.NotePatch) (*models.Note, error)
	deleteFunc func(ctx context.Context, ownerID string, noteID string) error
	listFunc   func(ctx context.Context, ownerID string, params services.ListParams) (*models.NotePage, error)
}

func (f *fakeNoteSvc) Create(ctx context.Context, ownerID string, title string, content string, category *string) (*models.Note, error) {
	return f.createFunc(ctx, ownerID, title, content, category)
}

func (f *fakeNoteSvc) Get(ctx context.Context, ownerID string, noteID string) (*models.Note, error) {
	return f.getFunc(ctx, ownerID, noteID)
}

func (f *fakeNoteSvc) Update(ctx context.Context, ownerID string, noteID string, patch models.NotePatch) (*models.Note, error) {
	return f.updateFunc(ctx, ownerID, noteID, patch)
}

func (f *fakeNoteSvc) Delete(ctx context.Context, ownerID string, noteID string) error {
	return f.deleteFunc(ctx, ownerID, noteID)
}

func (f *fakeNoteSvc) List(ctx context.Context, ownerID string, params services.ListParams) (*models.NotePage, error) {
	return f.listFunc(ctx, ownerID, params)
}

func newTestServer(users userSvc, notes noteSvc) *Server {
	return &Server{
		address:   ":0",
		logger:    logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		users:     users,
		notes:     notes,
		jwtSecret: []byte(testSecret),
	}
}

func validToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return token
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.routes().ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil, nil)

	rr := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
