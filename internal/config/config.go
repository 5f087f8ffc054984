// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the process configuration.
type Config struct {
	Port         string   `env:"PORT,default=8000"`
	StoreBackend string   `env:"STORE_BACKEND,default=rest"`
	SupabaseURL  string   `env:"SUPABASE_URL"`
	SupabaseKey  string   `env:"SUPABASE_KEY"`
	DatabaseURL  string   `env:"DATABASE_URL"`
	AutoMigrate  bool     `env:"AUTO_MIGRATE,default=false"`
	RedisURL     string   `env:"REDIS_URL"`
	CORSOrigins  []string `env:"CORS_ORIGINS,default=http://localhost:5173;http://127.0.0.1:5173"`
	LogLevel     string   `env:"LOG_LEVEL,default=info"`
	GinMode      string   `env:"GIN_MODE,default=release"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE,default=false"`
}

// Load reads .env (if any) and decodes the environment into a Config.
// It fails when the selected store backend is missing its connection settings.
func Load() (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store backend can be constructed.
func (c Config) Validate() error {
	switch strings.ToLower(c.StoreBackend) {
	case BackendREST, "":
		var missing []string
		if c.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.SupabaseKey == "" {
			missing = append(missing, "SUPABASE_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing store configuration: set %s", strings.Join(missing, " and "))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("missing store configuration: set DATABASE_URL for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// Backend returns the normalized store backend name.
func (c Config) Backend() string {
	if c.StoreBackend == "" {
		return BackendREST
	}
	return strings.ToLower(c.StoreBackend)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
