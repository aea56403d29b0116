package grpc

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"google.golang.org/grpc"
)

// AuthServiceServer is the server side of authkeeper.AuthService. Messages
// are the api structs, carried by the JSON codec.
type AuthServiceServer interface {
	Register(context.Context, *api.RegisterRequest) (*api.RegisterResponse, error)
	Login(context.Context, *api.LoginRequest) (*api.LoginResponse, error)
	Refresh(context.Context, *api.RefreshRequest) (*api.TokenPair, error)
	Logout(context.Context, *api.Empty) (*api.MessageResponse, error)
	Profile(context.Context, *api.Empty) (*api.ProfileResponse, error)
	Ping(context.Context, *api.Empty) (*api.PingResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AuthServiceServer.Register),
		unary("Login", AuthServiceServer.Login),
		unary("Refresh", AuthServiceServer.Refresh),
		unary("Logout", AuthServiceServer.Logout),
		unary("Profile", AuthServiceServer.Profile),
		unary("Ping", AuthServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authkeeper",
}

// RegisterAuthServiceServer attaches srv to s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// unary builds the method descriptor that decodes Req, runs the interceptor
// chain and calls the typed method.
func unary[Req, Resp any](name string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + api.ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(AuthServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
