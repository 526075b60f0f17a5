// Package notes stores notes and answers owner-scoped lookups, listings and
// substring searches.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/models"
)

// Repository is the owner-scoped note store. Every read filters by owner, so
// a note that exists but belongs to someone else is reported exactly like a
// missing one: common.ErrorNotFound.
//
// ListOwned and SearchOwned return one page ordered by id ascending together
// with the total number of matching notes.
type Repository interface {
	FindOwned(ctx context.Context, id int64, owner string) (*models.Note, error)
	ListOwned(ctx context.Context, owner string, offset, limit int) ([]*models.Note, int64, error)
	SearchOwned(ctx context.Context, owner, query string, offset, limit int) ([]*models.Note, int64, error)

	// Save inserts a note when ID is zero and otherwise updates the note with
	// that ID and owner. It returns the stored note with ID set.
	Save(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, note *models.Note) error
}
