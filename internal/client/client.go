package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	conn    *grpc.ClientConn
	api     *rpcapi.NoteVaultClient
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

// New connects lazily to addr. Extra dial options are appended after the
// defaults, which is how tests plug in an in-memory listener.
func New(addr string, timeout time.Duration, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.bearerTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	c.conn = conn
	c.api = rpcapi.NewNoteVaultClient(conn)
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func withBearerToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) bearerTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.Token(); token != "" {
		ctx = withBearerToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

type response interface {
	FromStruct(*structpb.Struct) error
}

func (c *Client) call(ctx context.Context, method string, in *structpb.Struct, out response) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.Invoke(ctx, method, in)
	if err != nil {
		return mapError(err)
	}
	if out == nil {
		return nil
	}
	return out.FromStruct(resp)
}

// Register creates an account and keeps the returned token for later calls.
func (c *Client) Register(ctx context.Context, userName, password, displayName string) (rpcapi.AuthResponse, error) {
	var resp rpcapi.AuthResponse
	req := rpcapi.RegisterRequest{UserName: userName, Password: password, DisplayName: displayName}
	if err := c.call(ctx, rpcapi.MethodRegister, req.ToStruct(), &resp); err != nil {
		return rpcapi.AuthResponse{}, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, userName, password string) (rpcapi.AuthResponse, error) {
	var resp rpcapi.AuthResponse
	req := rpcapi.LoginRequest{UserName: userName, Password: password}
	if err := c.call(ctx, rpcapi.MethodLogin, req.ToStruct(), &resp); err != nil {
		return rpcapi.AuthResponse{}, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

func (c *Client) CreateNote(ctx context.Context, in rpcapi.NoteRequest) (rpcapi.Note, error) {
	var n rpcapi.Note
	err := c.call(ctx, rpcapi.MethodCreateNote, in.ToStruct(), &n)
	return n, err
}

func (c *Client) GetNote(ctx context.Context, id int64) (rpcapi.Note, error) {
	var n rpcapi.Note
	err := c.call(ctx, rpcapi.MethodGetNote, rpcapi.NoteID{ID: id}.ToStruct(), &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, in rpcapi.NoteRequest) (rpcapi.Note, error) {
	var n rpcapi.Note
	err := c.call(ctx, rpcapi.MethodUpdateNote, in.ToStruct(), &n)
	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.call(ctx, rpcapi.MethodDeleteNote, rpcapi.NoteID{ID: id}.ToStruct(), nil)
}

func (c *Client) ListNotes(ctx context.Context, in rpcapi.ListNotesRequest) (rpcapi.NotePage, error) {
	var p rpcapi.NotePage
	err := c.call(ctx, rpcapi.MethodListNotes, in.ToStruct(), &p)
	return p, err
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	var p rpcapi.PingResponse
	err := c.call(ctx, rpcapi.MethodPing, nil, &p)
	return p.Status, err
}
