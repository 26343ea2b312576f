package server

const (
	RouteAuthLogin   = "/auth/login"
	RouteAuthToken   = "/auth/token"
	RouteAuthRefresh = "/auth/refresh"
	RouteAuthLogout  = "/auth/logout"

	RouteTaskAccess = "/tasks/{id}"
)

func (s *Server) initRoutes() {
	// Auth endpoints route directly into the orchestrator; no principal
	// context is needed to call them.
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthToken, ChainMiddleware(s.NewAccessTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Protected resource endpoints run the request authenticator once and
	// then the fine-grained ownership check.
	s.RegisterRouteHandler("GET "+RouteTaskAccess, ChainMiddleware(s.TaskAccessHandler(), append(s.APIMiddleware(), s.WithPrincipal(), s.RequirePrincipal())...))
}
