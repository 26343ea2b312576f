package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/taskhub-auth/auth"
	"github.com/jrsteele09/taskhub-auth/auth/sessions"
	"github.com/jrsteele09/taskhub-auth/internal/config"
	"github.com/jrsteele09/taskhub-auth/server"
	"github.com/jrsteele09/taskhub-auth/tasks/ownershiprepo"
	"github.com/jrsteele09/taskhub-auth/token"
	"github.com/jrsteele09/taskhub-auth/token/keys"
	"github.com/jrsteele09/taskhub-auth/users"
	"github.com/jrsteele09/taskhub-auth/users/principalrepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	displayAppname(cfg.GetAppName())

	// Key material is loaded exactly once; a missing or unreadable key
	// file is fatal, not runtime-recoverable.
	accessSecret, err := keys.LoadSymmetricKey(cfg.GetAccessKeyFile())
	if err != nil {
		return fmt.Errorf("loading access key: %w", err)
	}
	refreshSecret, err := keys.LoadSymmetricKey(cfg.GetRefreshKeyFile())
	if err != nil {
		return fmt.Errorf("loading refresh key: %w", err)
	}

	codec, err := token.New(accessSecret, refreshSecret,
		token.WithTokenExpiry(cfg.GetAccessTokenTTL(), cfg.GetRefreshTokenTTL()),
	)
	if err != nil {
		return fmt.Errorf("creating token codec: %w", err)
	}

	principalRepo := principalrepo.NewInMemoryRepo()
	if err := seedBootstrapPrincipal(cfg, principalRepo); err != nil {
		return fmt.Errorf("seeding bootstrap principal: %w", err)
	}

	srv, err := server.New(cfg,
		auth.Repos{Users: principalRepo},
		sessions.New(),
		codec,
		ownershiprepo.NewInMemoryRepo(),
	)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func seedBootstrapPrincipal(cfg config.Config, repo *principalrepo.InMemoryRepo) error {
	if cfg.GetBootstrapPassword() == "" {
		return nil
	}
	hash, err := users.HashPassword(cfg.GetBootstrapPassword())
	if err != nil {
		return err
	}
	return repo.Upsert(&users.Principal{
		Email:        cfg.GetBootstrapEmail(),
		FullName:     "Bootstrap Admin",
		Role:         users.RoleAdmin,
		PasswordHash: hash,
	})
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appName string) {
	figure.NewFigure(appName, "", true).Print()
}
