package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/server/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}

// limitInterceptor applies the operation deadline and holds one worker slot
// for the duration of the call.
func (s *GRPCServer) limitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.workers.Acquire(ctx, 1); err != nil {
		s.logger.Warn(ctx, "no worker available", "method", info.FullMethod, "error", err)
		return nil, toStatus(common.ErrUnavailable)
	}
	defer s.workers.Release(1)

	return handler(ctx, req)
}

func (s *GRPCServer) identityInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	user, err := identity.FromIncomingContext(ctx, s.services.Tokens)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(identity.WithUser(ctx, user), req)
}
