// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig
	Mongo    MongoConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	MCP      MCPConfig
	Shutdown ShutdownConfig
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Host         string        `env:"NOTES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"NOTES_HTTP_PORT" env-default:"5002"`
	ReadTimeout  time.Duration `env:"NOTES_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"NOTES_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"NOTES_HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Addr returns the host:port the server listens on.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI        string `env:"MONGO_URI" env-default:"mongodb://notes-db:27017/"`
	Database   string `env:"MONGO_DB" env-default:"notes_db"`
	Collection string `env:"MONGO_COLLECTION" env-default:"notes"`
	// ConnectTimeout bounds server selection for a single bootstrap attempt.
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"5s"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"NOTES_LOGGER_MODE" env-default:"production"`
}

// Development reports whether the logger should use the console encoder.
func (l LoggingConfig) Development() bool {
	return l.Mode == "development"
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `env:"NOTES_CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// MCPConfig toggles the MCP tool endpoint.
type MCPConfig struct {
	Enabled bool `env:"NOTES_MCP_ENABLED" env-default:"true"`
}

// ShutdownConfig holds graceful shutdown settings.
type ShutdownConfig struct {
	Timeout time.Duration `env:"NOTES_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}
