package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/notes"
)

// TokenValidator decodes a token into the identity it was issued for.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// OwnershipGuard turns bearer tokens into identities and loads notes only
// on behalf of their owner. It holds no per-request state.
type OwnershipGuard struct {
	tokens TokenValidator
	notes  notes.Repository
	logger logging.Logger
}

func NewOwnershipGuard(t TokenValidator, n notes.Repository, l logging.Logger) *OwnershipGuard {
	return &OwnershipGuard{tokens: t, notes: n, logger: l.With("module", "guard")}
}

// ResolveIdentity validates token and returns its subject. Every failure,
// including an empty token, is common.ErrUnauthenticated.
func (g *OwnershipGuard) ResolveIdentity(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthenticated
	}
	identity, err := g.tokens.Validate(token)
	if err != nil {
		g.logger.Debug(ctx, "token rejected", "reason", err)
		return "", fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	return identity, nil
}

// AuthorizeAndFetch returns note id if identity owns it. A missing note and
// a note owned by someone else both yield common.ErrorNotFound.
func (g *OwnershipGuard) AuthorizeAndFetch(ctx context.Context, id int64, identity string) (*models.Note, error) {
	note, err := g.notes.FindOwned(ctx, id, identity)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			g.logger.Warn(ctx, "note not found for user", "note_id", id, "username", identity)
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading note: %w", err)
	}
	return note, nil
}
