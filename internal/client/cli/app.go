package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/notevault/internal/client"
	"github.com/dmitrijs2005/notevault/internal/client/config"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
)

// ErrUsage is returned for a missing or malformed command line.
var ErrUsage = errors.New("usage")

const usage = `usage: notevault-cli [-a addr] [-token token] [-timeout d] <command>

commands:
  register            create an account
  login               sign in and print a token
  add                 create a note
  get <id>            show a note
  edit <id>           change a note
  delete <id>         delete a note
  list [-page n] [-size n] [query...]
                      list or search notes`

// API is the subset of client.Client the commands use.
type API interface {
	Register(ctx context.Context, userName, password, displayName string) (rpcapi.AuthResponse, error)
	Login(ctx context.Context, userName, password string) (rpcapi.AuthResponse, error)
	CreateNote(ctx context.Context, in rpcapi.NoteRequest) (rpcapi.Note, error)
	GetNote(ctx context.Context, id int64) (rpcapi.Note, error)
	UpdateNote(ctx context.Context, in rpcapi.NoteRequest) (rpcapi.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, in rpcapi.ListNotesRequest) (rpcapi.NotePage, error)
}

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(api API, in io.Reader, out io.Writer) *App {
	return &App{api: api, reader: bufio.NewReader(in), out: out}
}

// Dial opens a client for cfg with its token already set.
func Dial(cfg *config.Config) (*client.Client, error) {
	c, err := client.New(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}
	c.SetToken(cfg.Token)
	return c, nil
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "add":
		return a.add(ctx)
	case "get":
		return a.withID(rest, func(id int64) error { return a.get(ctx, id) })
	case "edit":
		return a.withID(rest, func(id int64) error { return a.edit(ctx, id) })
	case "delete":
		return a.withID(rest, func(id int64) error { return a.delete(ctx, id) })
	case "list":
		return a.list(ctx, rest)
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) withID(args []string, fn func(id int64) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected exactly one note id", ErrUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: invalid note id %q", ErrUsage, args[0])
	}
	return fn(id)
}
