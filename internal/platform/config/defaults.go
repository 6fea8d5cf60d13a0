package config

const (
	defaultServerPort = 8080

	defaultBcryptCost = 12

	defaultLoginRPS   = 1.0
	defaultLoginBurst = 5
)

// defaults returns the default configuration values. They are seeded into
// the koanf instance first and can be overridden by base.yaml, the profile
// YAML, and env vars. The auth secret has no default on purpose: validation
// fails loudly when none is configured.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"database.driver": "postgres",
		"database.dsn":    "",

		"auth.token_ttl":   "30m",
		"auth.bcrypt_cost": defaultBcryptCost,
		"auth.issuer":      "todo-api",

		"ratelimit.enabled":     true,
		"ratelimit.login_rps":   defaultLoginRPS,
		"ratelimit.login_burst": defaultLoginBurst,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
