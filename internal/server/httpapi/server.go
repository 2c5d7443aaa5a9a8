// Package httpapi exposes the HTTP surface of the notes service: auth and
// note routes, the bearer-token middleware, and JSON request/response
// plumbing.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dsmirnovs/notekeeper/internal/logging"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
	"github.com/dsmirnovs/notekeeper/internal/server/services"
)

type userSvc interface {
	Register(ctx context.Context, username string, email string, password string) (*models.User, error)
	Login(ctx context.Context, email string, password string) (*services.LoginResult, error)
}

type noteSvc interface {
	Create(ctx context.Context, ownerID string, title string, content string, category *string) (*models.Note, error)
	Get(ctx context.Context, ownerID string, noteID string) (*models.Note, error)
	Update(ctx context.Context, ownerID string, noteID string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, ownerID string, noteID string) error
	List(ctx context.Context, ownerID string, params services.ListParams) (*models.NotePage, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     userSvc
	notes     noteSvc
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, ns *services.NoteService, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		notes:     ns,
		jwtSecret: []byte(secretKey),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)

	mux.HandleFunc("/notes", s.requireAuth(s.handleNotesCollection))
	mux.HandleFunc("/notes/", s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/notes/")
		if id == "" {
			s.handleNotesCollection(w, r)
			return
		}
		s.handleNoteDetail(w, r, id)
	}))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
