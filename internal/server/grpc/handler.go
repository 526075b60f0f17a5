package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"github.com/dmitrijs2005/notevault/internal/server/metrics"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/services"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in rpcapi.RegisterRequest
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	res, err := s.auth.Register(ctx, in.UserName, in.Password, in.DisplayName)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.authEvent(metrics.EventConflict)
		}
		return nil, s.fail(ctx, "register", err)
	}
	s.authEvent(metrics.EventRegister)

	return authResponse(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in rpcapi.LoginRequest
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	res, err := s.auth.Login(ctx, in.UserName, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.authEvent(metrics.EventLoginFailed)
		}
		return nil, s.fail(ctx, "login", err)
	}
	s.authEvent(metrics.EventLogin)

	return authResponse(res), nil
}

func (s *GRPCServer) CreateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	var in rpcapi.NoteRequest
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	note, err := s.notes.Create(ctx, owner, noteInput(in))
	if err != nil {
		return nil, s.fail(ctx, "create note", err)
	}
	return toNote(note).ToStruct(), nil
}

func (s *GRPCServer) GetNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	var in rpcapi.NoteID
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	note, err := s.notes.Get(ctx, owner, in.ID)
	if err != nil {
		return nil, s.fail(ctx, "get note", err)
	}
	return toNote(note).ToStruct(), nil
}

func (s *GRPCServer) UpdateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	var in rpcapi.NoteRequest
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	note, err := s.notes.Update(ctx, owner, in.ID, noteInput(in))
	if err != nil {
		return nil, s.fail(ctx, "update note", err)
	}
	return toNote(note).ToStruct(), nil
}

func (s *GRPCServer) DeleteNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	var in rpcapi.NoteID
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	if err := s.notes.Delete(ctx, owner, in.ID); err != nil {
		return nil, s.fail(ctx, "delete note", err)
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := s.identity(ctx)
	if err != nil {
		return nil, err
	}
	var in rpcapi.ListNotesRequest
	if err := in.FromStruct(req); err != nil {
		return nil, toStatus(err)
	}

	page, err := s.notes.List(ctx, owner, in.Page, in.Size, in.Query)
	if err != nil {
		return nil, s.fail(ctx, "list notes", err)
	}

	out := rpcapi.NotePage{
		Items:      make([]rpcapi.Note, 0, len(page.Items)),
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
	for _, n := range page.Items {
		out.Items = append(out.Items, toNote(n))
	}
	return out.ToStruct(), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return rpcapi.PingResponse{Status: "OK"}.ToStruct(), nil
}

// identity returns the caller set by accessTokenInterceptor.
func (s *GRPCServer) identity(ctx context.Context) (string, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return "", toStatus(common.ErrUnauthenticated)
	}
	return id, nil
}

func authResponse(res *services.AuthResult) *structpb.Struct {
	return rpcapi.AuthResponse{Message: res.Message, UserName: res.UserName, Token: res.Token}.ToStruct()
}

func noteInput(in rpcapi.NoteRequest) services.NoteInput {
	return services.NoteInput{Title: in.Title, Content: in.Content, Tags: in.Tags}
}

func toNote(n *models.Note) rpcapi.Note {
	return rpcapi.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
