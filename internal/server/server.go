package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studybuddy/internal/bootstrap"
	"github.com/yigit/studybuddy/internal/config"
	"github.com/yigit/studybuddy/internal/db"
	"github.com/yigit/studybuddy/internal/pkg/helpers"
	"github.com/yigit/studybuddy/internal/pkg/session"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.Database
	sessions session.Store
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	sessions, err := bootstrap.SetupSessionStore(ctx, cfg, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup session store: %w", err)
	}

	assistantClient, err := bootstrap.SetupAssistant(ctx, cfg, lgr)
	if err != nil {
		sessions.Close()
		database.Close()
		return nil, fmt.Errorf("failed to setup assistant: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, sessions, assistantClient, lgr)
	if err != nil {
		sessions.Close()
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:   cfg,
		router:   bootstrap.SetupRouter(cfg, deps, lgr),
		database: database,
		sessions: sessions,
		logger:   lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 30*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 60*time.Second),
		IdleTimeout:  helpers.ParseDuration(s.config.Server.IdleTimeout, 120*time.Second),
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeResources()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if !s.closeResources() {
		shutdownError = true
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}

func (s *Server) closeResources() bool {
	ok := true

	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Failed to close session store")
			ok = false
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection...")
		if err := s.database.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Failed to close database")
			ok = false
		}
	}

	return ok
}
