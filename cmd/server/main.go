package main

import (
	"os"

	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/handlers"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load configuration")
	}

	logger.Setup(cfg.LogLevel)
	log := logger.New().WithField("service", "shift-roster")

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	h := handlers.New(cfg, db, log)
	if err := h.EnsureAdmin(); err != nil {
		log.WithError(err).Warn("could not ensure admin user")
	}

	r := h.Router()

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("could not run server")
	}
}
