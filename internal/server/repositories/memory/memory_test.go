package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	ok, err := r.ExistsByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	u, err := r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = r.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := r.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h1", got.PasswordHash)

	_, err = r.GetByUserName(ctx, "Alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserRepository_ConcurrentCreateSingleWinner(t *testing.T) {
	r := NewUserRepository()

	var (
		wg  sync.WaitGroup
		won atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(context.Background(), &models.User{UserName: "alice", PasswordHash: fmt.Sprint(i)})
			if err == nil {
				won.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
}

func saveNote(t *testing.T, r *NoteRepository, owner, title, content string) *models.Note {
	t.Helper()
	n, err := r.Save(context.Background(), &models.Note{Owner: owner, Title: title, Content: content, Tags: []string{}})
	require.NoError(t, err)
	return n
}

func TestNoteRepository_IDsStartAtOne(t *testing.T) {
	r := NewNoteRepository()
	assert.Equal(t, int64(1), saveNote(t, r, "alice", "a", "b").ID)
	assert.Equal(t, int64(2), saveNote(t, r, "bob", "a", "b").ID)
}

func TestNoteRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	r := NewNoteRepository()
	n := saveNote(t, r, "alice", "secret", "x")

	_, err := r.FindOwned(ctx, n.ID, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.Save(ctx, &models.Note{ID: n.ID, Owner: "bob", Title: "hijack", Content: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, r.Delete(ctx, &models.Note{ID: n.ID, Owner: "bob"}), common.ErrorNotFound)

	got, err := r.FindOwned(ctx, n.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)

	require.NoError(t, r.Delete(ctx, got))
	_, err = r.FindOwned(ctx, n.ID, "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewNoteRepository()
	n := saveNote(t, r, "alice", "t", "c")
	n.Title = "mutated"

	got, err := r.FindOwned(ctx, n.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestNoteRepository_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	r := NewNoteRepository()
	n := saveNote(t, r, "alice", "t", "c")
	created := n.CreatedAt

	upd, err := r.Save(ctx, &models.Note{ID: n.ID, Owner: "alice", Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, created, upd.CreatedAt)
	assert.Equal(t, "t2", upd.Title)
}

func TestNoteRepository_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	r := NewNoteRepository()
	for i := 0; i < 5; i++ {
		saveNote(t, r, "alice", fmt.Sprintf("note %d", i), "body")
	}
	saveNote(t, r, "alice", "Groceries", "milk")
	saveNote(t, r, "bob", "groceries", "eggs")

	items, total, err := r.ListOwned(ctx, "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(4), items[1].ID)

	items, total, err = r.ListOwned(ctx, "alice", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, total, err = r.SearchOwned(ctx, "alice", "GROC", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "alice", items[0].Owner)

	items, _, err = r.SearchOwned(ctx, "alice", "MILK", 0, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, total, err = r.SearchOwned(ctx, "alice", "%", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
