package repomanager

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/repositories/memory"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. Data does not
// survive a restart.
type InMemoryRepositoryManager struct {
	users *memory.UserRepository
	notes *memory.NoteRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: memory.NewUserRepository(),
		notes: memory.NewNoteRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *InMemoryRepositoryManager) Close() error                        { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Notes() notes.Repository {
	return m.notes
}
