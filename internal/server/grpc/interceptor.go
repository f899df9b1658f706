package grpc

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/common"
	pb "github.com/dmitrijs2005/idkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const bearerTokenKey ctxKey = "bearerToken"

// tokenFromContext returns the bearer token stored by bearerTokenInterceptor.
func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}

// bearerTokenInterceptor extracts "authorization: Bearer <token>" for methods
// that act on behalf of the caller. The token itself is verified by the
// service.
func (s *GRPCServer) bearerTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if info.FullMethod == pb.AccountService_WhoAmI_FullMethodName {

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				header = values[0]
			}
		}
		if len(header) == 0 {
			return nil, status.Error(codes.Unauthenticated, common.ErrMissingToken.Error())
		}

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidAuthHeaderFormat.Error())
		}

		ctx = context.WithValue(ctx, bearerTokenKey, strings.TrimSpace(token))
	}

	return handler(ctx, req)
}

// limitInterceptor caps the number of calls handled at once. A call whose
// context ends while it waits for a slot fails with the context's code.
func (s *GRPCServer) limitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := s.limiter.Acquire(ctx, 1); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	defer s.limiter.Release(1)

	return handler(ctx, req)
}

// recoveryInterceptor turns a handler panic into codes.Internal.
func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "panic in handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
			resp = nil
			err = status.Error(codes.Internal, common.ErrInternal.Error())
		}
	}()

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}
