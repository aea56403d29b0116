package api

// HTTP routes.
const (
	RouteRegister = "/auth/register"
	RouteLogin    = "/auth/login"
	RouteRefresh  = "/auth/refresh"
	RouteLogout   = "/auth/logout"
	RouteProfile  = "/auth/profile"
	RoutePing     = "/ping"
)

// gRPC service and full method names.
const (
	ServiceName = "authkeeper.AuthService"

	MethodRegister = "/" + ServiceName + "/Register"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodRefresh  = "/" + ServiceName + "/Refresh"
	MethodLogout   = "/" + ServiceName + "/Logout"
	MethodProfile  = "/" + ServiceName + "/Profile"
	MethodPing     = "/" + ServiceName + "/Ping"
)

// Messages returned on success.
const (
	MsgRegistered = "User registered successfully"
	MsgLoggedOut  = "Logged out successfully"
	StatusOK      = "OK"
)

// AnonymousRoutes never carry an access token and are never renewed.
var AnonymousRoutes = map[string]struct{}{
	RouteRegister: {},
	RouteLogin:    {},
	RouteRefresh:  {},
}

// AnonymousMethods is the gRPC counterpart of AnonymousRoutes.
var AnonymousMethods = map[string]struct{}{
	MethodRegister: {},
	MethodLogin:    {},
	MethodRefresh:  {},
	MethodPing:     {},
}
