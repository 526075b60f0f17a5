package repomanager

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
)

// RepositoryManager owns a storage backend and vends the repositories built
// on top of it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
	Close() error
	Users() users.Repository
	Notes() notes.Repository
}
