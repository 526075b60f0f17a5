package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// External messages. Each one may cover several internal causes.
const (
	msgUserExists         = "username already exists"
	msgInvalidCredentials = "invalid credentials"
	msgAuthRequired       = "authentication required"
	msgNoteNotFound       = "note not found"
	msgTooManyAttempts    = "too many login attempts"
	msgInternal           = "internal error"
)

// toStatus maps a service error to the status returned to the caller.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, msgUserExists)
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, msgInvalidCredentials)
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, msgAuthRequired)
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, msgNoteNotFound)
	case errors.Is(err, common.ErrValidation), errors.Is(err, rpcapi.ErrBadMessage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrTooManyRequests):
		return status.Error(codes.ResourceExhausted, msgTooManyAttempts)
	default:
		return status.Error(codes.Internal, msgInternal)
	}
}

// fail logs err when it maps to an internal error and returns its status.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}
