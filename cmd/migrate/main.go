package main

import (
	"Picgram/internal/config"
	"Picgram/internal/pkg/database"
	"Picgram/internal/pkg/logger"
	log "log/slog"
	"os"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg := config.Cfg

	logger.InitLogger(cfg.Logstash)

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		os.Exit(1)
	}

	if err = database.Migrate(db); err != nil {
		log.Error("Migration failed", "err", err)
		os.Exit(1)
	}
	log.Info("Migration finished")
}
