package config

import (
	"fmt"

	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultMasterSecret = "change-me-master-secret"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Postgres is used when DATABASE_URL is set, SQLite at DATA_PATH otherwise
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DataPath    string `mapstructure:"DATA_PATH"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	APIMasterSecret string `mapstructure:"API_MASTER_SECRET"`
	AdminUsername   string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`

	HourCap         int     `mapstructure:"HOUR_CAP"`
	MaxAnchors      int     `mapstructure:"MAX_ANCHORS"`
	WorkloadPenalty float64 `mapstructure:"WORKLOAD_PENALTY"`
}

// Load reads configuration from an optional config.yaml and the environment.
// Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	opts := scheduler.DefaultOptions()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATA_PATH", "api_keys.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("API_MASTER_SECRET", defaultMasterSecret)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("HOUR_CAP", opts.HourCap)
	v.SetDefault("MAX_ANCHORS", opts.MaxAnchors)
	v.SetDefault("WORKLOAD_PENALTY", opts.WorkloadPenalty)
}

func validate(cfg *Config) error {
	if cfg.IsProduction() {
		if cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if cfg.APIMasterSecret == defaultMasterSecret {
			return fmt.Errorf("API_MASTER_SECRET must be set in production")
		}
	}
	if cfg.HourCap <= 0 {
		return fmt.Errorf("HOUR_CAP must be positive")
	}
	if cfg.MaxAnchors <= 0 {
		return fmt.Errorf("MAX_ANCHORS must be positive")
	}
	if cfg.WorkloadPenalty < 0 {
		return fmt.Errorf("WORKLOAD_PENALTY must not be negative")
	}
	return nil
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SchedulerOptions returns the engine settings
func (c *Config) SchedulerOptions() scheduler.Options {
	return scheduler.Options{
		HourCap:         c.HourCap,
		MaxAnchors:      c.MaxAnchors,
		WorkloadPenalty: c.WorkloadPenalty,
	}
}
