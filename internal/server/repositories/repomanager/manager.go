// Package repomanager hands out repositories bound to a database handle.
// Services request repositories per call, passing either the shared *sql.DB
// or an open transaction, so the same repository code runs in both modes.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsmirnovs/notekeeper/internal/dbx"
	"github.com/dsmirnovs/notekeeper/internal/server/repositories/notes"
	"github.com/dsmirnovs/notekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
