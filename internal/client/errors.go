package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notevault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

// mapError turns a gRPC status into a sentinel error carrying the server's
// message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = common.ErrorUnauthorized
	case codes.NotFound:
		sentinel = common.ErrorNotFound
	case codes.AlreadyExists:
		sentinel = common.ErrAlreadyExists
	case codes.InvalidArgument:
		sentinel = common.ErrValidation
	case codes.ResourceExhausted:
		sentinel = common.ErrTooManyRequests
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
