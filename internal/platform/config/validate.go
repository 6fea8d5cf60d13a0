package config

import (
	"errors"
	"fmt"
)

// minBcryptCost mirrors bcrypt.MinCost without importing the package here.
const minBcryptCost = 4

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Database.validate(),
		c.Auth.validate(),
		c.RateLimit.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	switch d.Driver {
	case "postgres", "sqlite":
		// Valid drivers.
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of: postgres, sqlite; got %q", d.Driver))
	}

	if d.DSN == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}

	return errors.Join(errs...)
}

func (a *AuthConfig) validate() error {
	var errs []error

	if a.Secret == "" {
		errs = append(errs, errors.New("auth.secret must not be empty"))
	}
	if a.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if a.BcryptCost < minBcryptCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be >= %d, got %d", minBcryptCost, a.BcryptCost))
	}

	return errors.Join(errs...)
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}

	var errs []error

	if r.LoginRPS <= 0 {
		errs = append(errs, fmt.Errorf("ratelimit.login_rps must be positive, got %f", r.LoginRPS))
	}
	if r.LoginBurst < 1 {
		errs = append(errs, fmt.Errorf("ratelimit.login_burst must be >= 1, got %d", r.LoginBurst))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
