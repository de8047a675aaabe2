package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	Env      string
	LogLevel string

	// TrustProxy enables X-Forwarded-For/X-Real-IP resolution for request
	// logging. Leave off unless a trusted proxy terminates connections.
	TrustProxy bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the database is configured and
	// reachable.
	ReadinessRequireDB bool

	// SessionSweepInterval controls how often expired refresh sessions are
	// removed.
	SessionSweepInterval time.Duration
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("TASKFLOW_HTTP_ADDR", "0.0.0.0:4000"),
		Env:      EnvString("TASKFLOW_ENV", "development"),
		LogLevel: EnvString("TASKFLOW_LOG_LEVEL", "info"),

		TrustProxy: EnvBool("TASKFLOW_TRUST_PROXY", false),

		ReadHeaderTimeout: EnvDuration("TASKFLOW_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("TASKFLOW_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("TASKFLOW_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("TASKFLOW_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("TASKFLOW_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("TASKFLOW_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("TASKFLOW_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("TASKFLOW_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("TASKFLOW_READINESS_REQUIRE_DB", false),

		SessionSweepInterval: EnvDuration("TASKFLOW_SESSION_SWEEP_INTERVAL", time.Hour),
	}
}
