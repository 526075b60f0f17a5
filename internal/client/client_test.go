package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"github.com/dmitrijs2005/notevault/internal/server/auth"
	nvgrpc "github.com/dmitrijs2005/notevault/internal/server/grpc"
	"github.com/dmitrijs2005/notevault/internal/server/metrics"
	"github.com/dmitrijs2005/notevault/internal/server/ratelimit"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notevault/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// startServer runs a full in-memory server and returns a dialer for it.
func startServer(t *testing.T) grpc.DialOption {
	t.Helper()

	rm := repomanager.NewInMemoryRepositoryManager()
	hasher := auth.NewPasswordHasherWithParams(auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})
	tokens, err := auth.NewTokenService([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	l := logging.Nop()
	guard := services.NewOwnershipGuard(tokens, rm.Notes(), l)
	as := services.NewAuthService(rm.Users(), hasher, tokens, l)
	ns := services.NewNoteService(rm.Notes(), guard, l)
	limiter := ratelimit.NewMemoryLimiter(100, time.Minute)
	t.Cleanup(func() { _ = limiter.Close() })

	s := nvgrpc.NewGRPCServer("bufnet", l, as, ns, guard, limiter, metrics.New())

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) })
}

func newTestClient(t *testing.T, dialer grpc.DialOption) *Client {
	t.Helper()
	c, err := New("passthrough:///bufnet", 5*time.Second, dialer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_Ping(t *testing.T) {
	c := newTestClient(t, startServer(t))

	got, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", got)
}

func TestClient_NoteLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, startServer(t))

	resp, err := c.Register(ctx, "alice", "s3cret", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.UserName)
	assert.Equal(t, resp.Token, c.Token())

	created, err := c.CreateNote(ctx, rpcapi.NoteRequest{Title: "Groceries", Content: "milk", Tags: []string{"home"}})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := c.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, []string{"home"}, got.Tags)

	updated, err := c.UpdateNote(ctx, rpcapi.NoteRequest{ID: created.ID, Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	page, err := c.ListNotes(ctx, rpcapi.ListNotesRequest{Page: 0, Size: 10, Query: "grocer"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)

	require.NoError(t, c.DeleteNote(ctx, created.ID))
	_, err = c.GetNote(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClient_OwnershipAndErrors(t *testing.T) {
	ctx := context.Background()
	dialer := startServer(t)

	alice := newTestClient(t, dialer)
	_, err := alice.Register(ctx, "alice", "pw-a", "")
	require.NoError(t, err)
	note, err := alice.CreateNote(ctx, rpcapi.NoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	bob := newTestClient(t, dialer)
	_, err = bob.Register(ctx, "alice", "other", "")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Empty(t, bob.Token())

	_, err = bob.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "no token yet")

	_, err = bob.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = bob.Register(ctx, "bob", "pw-b", "")
	require.NoError(t, err)
	_, err = bob.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = bob.CreateNote(ctx, rpcapi.NoteRequest{Title: "", Content: "c"})
	assert.ErrorIs(t, err, common.ErrValidation)

	bob.SetToken("garbage")
	_, err = bob.ListNotes(ctx, rpcapi.ListNotesRequest{Size: 5})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	fresh := newTestClient(t, dialer)
	_, err = fresh.Login(ctx, "alice", "pw-a")
	require.NoError(t, err)
	got, err := fresh.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
}

func TestWithBearerToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(),
		common.AuthorizationHeaderName, "Bearer old", "x-request-id", "r1")

	ctx = withBearerToken(ctx, "new")

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"Bearer new"}, md.Get(common.AuthorizationHeaderName))
	assert.Equal(t, []string{"r1"}, md.Get("x-request-id"))
}

func TestSetToken_Trims(t *testing.T) {
	c := &Client{}
	c.SetToken("  abc\n")
	assert.Equal(t, "abc", c.Token())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, common.ErrorUnauthorized},
		{codes.NotFound, common.ErrorNotFound},
		{codes.AlreadyExists, common.ErrAlreadyExists},
		{codes.InvalidArgument, common.ErrValidation},
		{codes.ResourceExhausted, common.ErrTooManyRequests},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := mapError(status.Error(tt.code, "server says no"))
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "server says no")
		})
	}

	t.Run("internal keeps status", func(t *testing.T) {
		err := mapError(status.Error(codes.Internal, "internal error"))
		assert.Equal(t, codes.Internal, status.Code(errors.Unwrap(err)))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapError(nil))
	})
}
