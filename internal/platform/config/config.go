// Package config provides configuration loading and validation for the
// service. Configuration is loaded from YAML files with environment variable
// overrides using a layered system: defaults -> base.yaml -> {profile}.yaml
// -> env vars. The resulting Config is constructed once at process start and
// passed explicitly to every component that needs it.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DatabaseConfig holds relational store settings. Driver selects the gorm
// dialect: "postgres" for deployments, "sqlite" for local profiles.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

// AuthConfig holds token signing and password hashing settings. The secret
// is process-wide, loaded once at startup, and never derived from user input.
type AuthConfig struct {
	Secret     string        `koanf:"secret"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
	Issuer     string        `koanf:"issuer"`
}

// RateLimitConfig holds the token-bucket settings applied to the
// authentication endpoints, per client address.
type RateLimitConfig struct {
	Enabled    bool    `koanf:"enabled"`
	LoginRPS   float64 `koanf:"login_rps"`
	LoginBurst int     `koanf:"login_burst"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
