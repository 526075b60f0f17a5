package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/paging"
)

// NoteRepository keeps notes in a map keyed by id. Ids start at 1 and are
// never reused.
type NoteRepository struct {
	mu     sync.RWMutex
	lastID int64
	notes  map[int64]*models.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[int64]*models.Note)}
}

func (r *NoteRepository) FindOwned(_ context.Context, id int64, owner string) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.notes[id]
	if !ok || n.Owner != owner {
		return nil, common.ErrorNotFound
	}
	return n.Clone(), nil
}

func (r *NoteRepository) ListOwned(_ context.Context, owner string, offset, limit int) ([]*models.Note, int64, error) {
	items, total := r.collect(owner, func(*models.Note) bool { return true }, offset, limit)
	return items, total, nil
}

func (r *NoteRepository) SearchOwned(_ context.Context, owner, query string, offset, limit int) ([]*models.Note, int64, error) {
	items, total := r.collect(owner, func(n *models.Note) bool {
		return paging.Matches(query, n.Title, n.Content)
	}, offset, limit)
	return items, total, nil
}

func (r *NoteRepository) collect(owner string, match func(*models.Note) bool, offset, limit int) ([]*models.Note, int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*models.Note
	for _, n := range r.notes {
		if n.Owner == owner && match(n) {
			found = append(found, n)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })

	total := int64(len(found))
	if offset >= len(found) {
		return []*models.Note{}, total
	}
	end := len(found)
	if limit < end-offset {
		end = offset + limit
	}

	out := make([]*models.Note, 0, end-offset)
	for _, n := range found[offset:end] {
		out = append(out, n.Clone())
	}
	return out, total
}

func (r *NoteRepository) Save(_ context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.ID == 0 {
		r.lastID++
		note.ID = r.lastID
		r.notes[note.ID] = note.Clone()
		return note, nil
	}

	cur, ok := r.notes[note.ID]
	if !ok || cur.Owner != note.Owner {
		return nil, common.ErrorNotFound
	}
	note.CreatedAt = cur.CreatedAt
	r.notes[note.ID] = note.Clone()
	return note, nil
}

func (r *NoteRepository) Delete(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.notes[note.ID]
	if !ok || cur.Owner != note.Owner {
		return common.ErrorNotFound
	}
	delete(r.notes, note.ID)
	return nil
}
