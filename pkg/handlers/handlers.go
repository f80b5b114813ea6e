package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/apperrors"
	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/config"
	"github.com/arnavshah/shift-roster-go/pkg/demand"
	"github.com/arnavshah/shift-roster-go/pkg/logger"
	"github.com/arnavshah/shift-roster-go/pkg/roster"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Version is reported by the info endpoint
const Version = "3.0.0"

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB      *gorm.DB
	Roster  *roster.Roster
	Demand  *demand.Store
	Keys    *auth.Keys
	Options scheduler.Options
	Log     *logger.Logger

	adminUsername string
	adminPassword string
}

// New wires a Handler from configuration. The roster starts with the demo
// employees and the demand store starts empty.
func New(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Handler {
	validate := validator.New()
	return &Handler{
		DB:            db,
		Roster:        roster.NewWithDemoData(validate),
		Demand:        demand.NewStore(validate),
		Keys:          auth.NewKeys(cfg.JWTSecret, cfg.APIMasterSecret),
		Options:       cfg.SchedulerOptions(),
		Log:           log,
		adminUsername: cfg.AdminUsername,
		adminPassword: cfg.AdminPassword,
	}
}

// EnsureAdmin creates the configured admin user on an empty database
func (h *Handler) EnsureAdmin() error {
	created, err := auth.EnsureAdminExists(h.DB, h.adminUsername, h.adminPassword)
	if err != nil {
		return err
	}
	if created {
		h.Log.WithField("username", h.adminUsername).Info("default admin user created")
	}
	return nil
}

// respondError maps typed errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.requestLog(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// Home reports the service name and version
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Shift Roster API (Go Version)",
		"version": Version,
	})
}

// Health pings the database
func (h *Handler) Health(c *gin.Context) {
	status := http.StatusOK
	services := gin.H{"database": "healthy"}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		services["database"] = "error: " + err.Error()
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":    state,
		"timestamp": time.Now(),
		"version":   Version,
		"services":  services,
	})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	if err := h.EnsureAdmin(); err != nil {
		h.requestLog(c).WithError(err).Warn("could not ensure admin user")
	}

	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
