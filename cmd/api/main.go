package main

import (
	"context"

	"github.com/yigit/studybuddy/internal/pkg/logger"
	"github.com/yigit/studybuddy/internal/server"
)

// @title StudyBuddy API
// @version 1.0
// @description Backend for the StudyBuddy campus study platform
// @BasePath /api

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server execution failed or shutdown encountered errors")
	}

	logger.Info().Msg("Application finished gracefully.")
}
