// Package cli implements the interactive terminal client for the notes
// server: a small REPL with commands for registering, logging in and working
// with notes.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dsmirnovs/notekeeper/internal/client/api"
	"github.com/dsmirnovs/notekeeper/internal/client/config"
)

// apiClient is the server surface the CLI commands need. The real api.Client
// satisfies it; tests can provide a lightweight stub.
type apiClient interface {
	Register(ctx context.Context, username string, email string, password string) (*api.User, error)
	Login(ctx context.Context, email string, password string) (*api.User, error)
	Logout()
	CreateNote(ctx context.Context, title string, content string, category *string) (*api.Note, error)
	GetNote(ctx context.Context, id string) (*api.Note, error)
	UpdateNote(ctx context.Context, id string, patch api.NotePatch) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, opts api.ListOptions) (*api.NotePage, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
