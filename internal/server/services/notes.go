package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/paging"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/notes"
)

// NoteInput carries the user-editable fields of a note.
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

func (in NoteInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is mandatory", common.ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is mandatory", common.ErrValidation)
	}
	return nil
}

func (in NoteInput) tags() []string {
	return append(make([]string, 0, len(in.Tags)), in.Tags...)
}

// NoteService runs note operations for an already authenticated owner.
type NoteService struct {
	notes  notes.Repository
	guard  *OwnershipGuard
	logger logging.Logger
	now    func() time.Time
}

func NewNoteService(n notes.Repository, g *OwnershipGuard, l logging.Logger) *NoteService {
	return &NoteService{notes: n, guard: g, logger: l.With("module", "notes"), now: time.Now}
}

func (s *NoteService) Create(ctx context.Context, owner string, in NoteInput) (*models.Note, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	note := &models.Note{
		Owner:     owner,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.tags(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.notes.Save(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error saving note: %w", err)
	}
	s.logger.Info(ctx, "note created", "username", owner, "note_id", saved.ID)
	return saved, nil
}

func (s *NoteService) Get(ctx context.Context, owner string, id int64) (*models.Note, error) {
	return s.guard.AuthorizeAndFetch(ctx, id, owner)
}

// Update replaces title, content and tags. Owner and creation time are kept.
func (s *NoteService) Update(ctx context.Context, owner string, id int64, in NoteInput) (*models.Note, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	note, err := s.guard.AuthorizeAndFetch(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	note.Title = in.Title
	note.Content = in.Content
	note.Tags = in.tags()
	note.UpdatedAt = s.now().UTC().Truncate(time.Microsecond)

	saved, err := s.notes.Save(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error saving note: %w", err)
	}
	s.logger.Info(ctx, "note updated", "username", owner, "note_id", id)
	return saved, nil
}

func (s *NoteService) Delete(ctx context.Context, owner string, id int64) error {
	note, err := s.guard.AuthorizeAndFetch(ctx, id, owner)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, note); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	s.logger.Info(ctx, "note deleted", "username", owner, "note_id", id)
	return nil
}

// List returns one page of the owner's notes ordered by id. A blank query
// lists everything; otherwise only notes whose title or content contains
// the query, ignoring case.
func (s *NoteService) List(ctx context.Context, owner string, page, size int, query string) (paging.Page[*models.Note], error) {
	w := paging.Normalize(page, size)
	q, search := paging.NormalizeQuery(query)

	var (
		items []*models.Note
		total int64
		err   error
	)
	if search {
		items, total, err = s.notes.SearchOwned(ctx, owner, q, w.Offset, w.Limit)
	} else {
		items, total, err = s.notes.ListOwned(ctx, owner, w.Offset, w.Limit)
	}
	if err != nil {
		return paging.Page[*models.Note]{}, fmt.Errorf("error listing notes: %w", err)
	}

	s.logger.Debug(ctx, "notes listed", "username", owner, "search", search, "total", total)
	return paging.NewPage(items, w, total), nil
}
