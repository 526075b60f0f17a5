package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/paging"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteService(t *testing.T) *NoteService {
	t.Helper()
	repo := memory.NewNoteRepository()
	g := NewOwnershipGuard(newTokens(t), repo, logging.Nop())
	return NewNoteService(repo, g, logging.Nop())
}

func TestNoteService_CreateGet(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", NoteInput{Title: "Groceries", Content: "milk", Tags: []string{"home", "todo"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice", created.Owner)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestNoteService_NilTagsBecomeEmpty(t *testing.T) {
	s := newNoteService(t)

	n, err := s.Create(context.Background(), "alice", NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)
}

func TestNoteService_Validation(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()

	for _, in := range []NoteInput{
		{Title: "", Content: "c"},
		{Title: "  ", Content: "c"},
		{Title: "t", Content: ""},
		{Title: "t", Content: "\t\n"},
	} {
		_, err := s.Create(ctx, "alice", in)
		assert.ErrorIs(t, err, common.ErrValidation, "%+v", in)
	}

	n, err := s.Create(ctx, "alice", NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = s.Update(ctx, "alice", n.ID, NoteInput{Title: "", Content: "c"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestNoteService_Update(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	n, err := s.Create(ctx, "alice", NoteInput{Title: "t", Content: "c", Tags: []string{"a"}})
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(time.Hour) }
	upd, err := s.Update(ctx, "alice", n.ID, NoteInput{Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, n.ID, upd.ID)
	assert.Equal(t, "alice", upd.Owner)
	assert.Equal(t, "t2", upd.Title)
	assert.Empty(t, upd.Tags)
	assert.Equal(t, base, upd.CreatedAt)
	assert.Equal(t, base.Add(time.Hour), upd.UpdatedAt)

	got, err := s.Get(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, upd, got)
}

func TestNoteService_CrossOwnerIsNotFound(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()

	n, err := s.Create(ctx, "alice", NoteInput{Title: "secret", Content: "c"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "bob", n.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, "bob", n.ID, NoteInput{Title: "pwned", Content: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "bob", n.ID), common.ErrorNotFound)

	_, errMissing := s.Get(ctx, "bob", 12345)
	_, errForeign := s.Get(ctx, "bob", n.ID)
	assert.Equal(t, errMissing, errForeign)

	got, err := s.Get(ctx, "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestNoteService_Delete(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()

	n, err := s.Create(ctx, "alice", NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice", n.ID))
	_, err = s.Get(ctx, "alice", n.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "alice", n.ID), common.ErrorNotFound)
}

func TestNoteService_ListPagination(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		_, err := s.Create(ctx, "alice", NoteInput{Title: fmt.Sprintf("note %d", i), Content: "c"})
		require.NoError(t, err)
	}

	p, err := s.List(ctx, "alice", 2, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(25), p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.Page)
	require.Len(t, p.Items, 5)
	assert.Equal(t, int64(21), p.Items[0].ID)

	p, err = s.List(ctx, "alice", -1, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, paging.DefaultSize, p.Size)
	assert.Len(t, p.Items, paging.DefaultSize)

	p, err = s.List(ctx, "alice", 0, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, paging.MaxSize, p.Size)
	assert.Len(t, p.Items, 25)
}

func TestNoteService_BlankQueryEqualsList(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := s.Create(ctx, "alice", NoteInput{Title: fmt.Sprintf("t%d", i), Content: "c"})
		require.NoError(t, err)
	}

	for page := 0; page < 3; page++ {
		list, err := s.List(ctx, "alice", page, 3, "")
		require.NoError(t, err)
		for _, q := range []string{" ", "\t", "   "} {
			blank, err := s.List(ctx, "alice", page, 3, q)
			require.NoError(t, err)
			assert.Equal(t, list, blank)
		}
	}
}

func TestNoteService_SearchIsolation(t *testing.T) {
	s := newNoteService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "alice", NoteInput{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "bob", NoteInput{Title: "groceries", Content: "eggs"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "alice", NoteInput{Title: "Work", Content: "buy GROCERIES later"})
	require.NoError(t, err)

	p, err := s.List(ctx, "alice", 0, 10, "  grocer ")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.TotalItems)
	for _, n := range p.Items {
		assert.Equal(t, "alice", n.Owner)
	}
	assert.Less(t, p.Items[0].ID, p.Items[1].ID)

	p, err = s.List(ctx, "bob", 0, 10, "milk")
	require.NoError(t, err)
	assert.Zero(t, p.TotalItems)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}
