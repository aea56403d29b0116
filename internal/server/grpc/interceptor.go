package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userKey ctxKey = "user"

// protectedMethods require a valid access token.
var protectedMethods = map[string]struct{}{
	api.MethodLogout:  {},
	api.MethodProfile: {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeaderName)); len(values) > 0 {
			header = values[0]
		}
	}
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := s.svc.Authenticate(strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix)))
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"latency", time.Since(start),
	)
	return resp, err
}

func userFromContext(ctx context.Context) (*services.UserInfo, bool) {
	u, ok := ctx.Value(userKey).(*services.UserInfo)
	return u, ok
}
