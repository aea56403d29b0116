package session

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var authMetadataKey = strings.ToLower(common.AuthorizationHeaderName)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(authMetadataKey)
	if token != "" {
		md.Set(authMetadataKey, common.BearerPrefix+token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryClientInterceptor is the gRPC counterpart of Transport: one retry
// after Unauthenticated, anonymous methods pass through untouched.
func (s *Session) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if _, ok := api.AnonymousMethods[method]; ok {
			return invoker(ctx, method, req, reply, cc, opts...)
		}

		access := s.AccessToken()
		err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
		if status.Code(err) != codes.Unauthenticated {
			return err
		}

		fresh, rerr := s.Renew(ctx, access)
		if rerr != nil {
			return rerr
		}
		return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
	}
}
