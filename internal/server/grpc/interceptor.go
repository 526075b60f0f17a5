package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"github.com/dmitrijs2005/notevault/internal/server/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type ctxKey string

const identityKey ctxKey = "identity"

// RequestIDHeader is set on every response.
const RequestIDHeader = "x-request-id"

// publicMethods do not need a bearer token.
var publicMethods = map[string]bool{
	rpcapi.MethodRegister: true,
	rpcapi.MethodLogin:    true,
	rpcapi.MethodPing:     true,
}

// IdentityFromContext returns the user name the access token interceptor
// stored for the current call.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := uuid.NewString()
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveRPC(info.FullMethod, code.String(), elapsed)
	}
	s.logger.Info(ctx, "request",
		"method", info.FullMethod, "code", code.String(), "duration", elapsed, "request_id", requestID)

	return resp, err
}

// loginRateLimitInterceptor counts Login attempts per user name, whether or
// not the account exists.
func (s *GRPCServer) loginRateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod != rpcapi.MethodLogin || s.limiter == nil {
		return handler(ctx, req)
	}

	var in rpcapi.LoginRequest
	if st, ok := req.(*structpb.Struct); ok {
		_ = in.FromStruct(st)
	}

	allowed, err := s.limiter.Allow(ctx, strings.TrimSpace(in.UserName))
	if err != nil {
		s.logger.Warn(ctx, "login rate limiter unavailable", "error", err)
	}
	if !allowed {
		s.authEvent(metrics.EventRateLimited)
		s.logger.Warn(ctx, "login rate limited", "username", in.UserName)
		return nil, toStatus(common.ErrTooManyRequests)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	identity, err := s.guard.ResolveIdentity(ctx, bearerToken(ctx))
	if err != nil {
		s.authEvent(metrics.EventTokenInvalid)
		return nil, toStatus(err)
	}

	return handler(context.WithValue(ctx, identityKey, identity), req)
}

// bearerToken extracts the token from "authorization: Bearer <token>".
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(values[0]), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *GRPCServer) authEvent(event string) {
	if s.metrics != nil {
		s.metrics.AuthEvent(event)
	}
}
