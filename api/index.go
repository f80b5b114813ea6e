package handler

import (
	"net/http"

	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/handlers"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load configuration")
	}
	logger.Setup(cfg.LogLevel)
	log := logger.New().WithField("service", "shift-roster").WithField("runtime", "vercel")

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	h := handlers.New(cfg, db, log)
	if err := h.EnsureAdmin(); err != nil {
		log.WithError(err).Warn("could not ensure admin user")
	}

	gin.SetMode(gin.ReleaseMode)
	r = h.Router()
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
