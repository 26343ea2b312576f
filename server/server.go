package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/taskhub-auth/auth"
	"github.com/jrsteele09/taskhub-auth/auth/sessions"
	"github.com/jrsteele09/taskhub-auth/internal/config"
	"github.com/jrsteele09/taskhub-auth/tasks"
	"github.com/jrsteele09/taskhub-auth/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	auth   *auth.Service
	store  *sessions.Store
	codec  *token.Codec
	tasks  *tasks.Authorizer
}

func New(cfg config.Config, repos auth.Repos, store *sessions.Store, codec *token.Codec, ownership tasks.OwnershipRepo) (*Server, error) {
	authService, err := auth.NewService(repos, store, codec)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	authorizer, err := tasks.NewAuthorizer(ownership)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create task authorizer: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		store:  store,
		codec:  codec,
		tasks:  authorizer,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
