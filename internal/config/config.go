package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Report   ReportConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// StorageConfig selects where incidents and edited categories live.
// DataDir holds the category collections when the driver is memory;
// an empty DataDir keeps them in process memory only.
type StorageConfig struct {
	Driver        string
	DataDir       string
	SeedIncidents bool
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// AuthConfig holds session token and demo login settings.
type AuthConfig struct {
	JWTSecret    string
	DemoPassword string
	TokenTTL     time.Duration
}

// ReportConfig holds the reporting periods offered to users.
type ReportConfig struct {
	Years       []int
	DefaultYear int
}

// Load reads configuration from the environment, after loading an optional
// .env file. Defaults target local development.
func Load() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("SEED_INCIDENTS", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "sdma")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("JWT_SECRET", "development-secret-change-me")
	v.SetDefault("DEMO_PASSWORD", "sadmin")
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("REPORT_YEARS", "2020,2021,2022,2023,2024,2025")
	v.SetDefault("DEFAULT_YEAR", 2024)

	v.AutomaticEnv()

	years, err := parseYears(v.GetString("REPORT_YEARS"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("PORT"),
			Env:      v.GetString("ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
			DataDir:       v.GetString("DATA_DIR"),
			SeedIncidents: v.GetBool("SEED_INCIDENTS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Auth: AuthConfig{
			JWTSecret:    v.GetString("JWT_SECRET"),
			DemoPassword: v.GetString("DEMO_PASSWORD"),
			TokenTTL:     v.GetDuration("TOKEN_TTL"),
		},
		Report: ReportConfig{
			Years:       years,
			DefaultYear: v.GetInt("DEFAULT_YEAR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage.Driver)
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.Env == "production" && c.Auth.JWTSecret == "development-secret-change-me" {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}
	if c.Auth.DemoPassword == "" {
		return fmt.Errorf("DEMO_PASSWORD is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	if len(c.Report.Years) == 0 {
		return fmt.Errorf("REPORT_YEARS is required")
	}
	if !c.Report.HasYear(c.Report.DefaultYear) {
		return fmt.Errorf("DEFAULT_YEAR %d must be one of REPORT_YEARS", c.Report.DefaultYear)
	}

	return nil
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if d.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if d.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if d.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if d.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if d.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if d.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if d.PoolMin > d.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}
	return nil
}

// HasYear reports whether year is an offered reporting year.
func (r ReportConfig) HasYear(year int) bool {
	for _, y := range r.Years {
		if y == year {
			return true
		}
	}
	return false
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	return splitList(origins)
}

// parseYears parses a comma-separated list of years.
func parseYears(s string) ([]int, error) {
	parts := splitList(s)
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("REPORT_YEARS contains invalid year %q", p)
		}
		years = append(years, y)
	}
	return years, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
