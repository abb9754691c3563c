package main

import (
	"fmt"
	"os"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/devserver"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	srv, err := devserver.New(&cfg.DevServer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create dev server")
	}

	log.Info().Str("addr", cfg.DevServer.Addr).Msg("Starting jobdeck dev server...")

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Dev server failed")
	}
}
