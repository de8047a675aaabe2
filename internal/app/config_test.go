package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.HTTPAddr != "0.0.0.0:4000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.SessionSweepInterval != time.Hour {
		t.Fatalf("SessionSweepInterval = %v", cfg.SessionSweepInterval)
	}
	if cfg.TrustProxy {
		t.Fatalf("TrustProxy = true by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TASKFLOW_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("TASKFLOW_LOG_LEVEL", "debug")
	t.Setenv("TASKFLOW_DB_MAX_CONNS", "25")
	t.Setenv("TASKFLOW_SESSION_SWEEP_INTERVAL", "10m")
	t.Setenv("TASKFLOW_READINESS_REQUIRE_DB", "true")
	t.Setenv("TASKFLOW_ENV", "production")
	t.Setenv("TASKFLOW_TRUST_PROXY", "true")

	cfg := LoadConfig()

	if cfg.HTTPAddr != "127.0.0.1:9999" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DBMaxConns != 25 {
		t.Fatalf("DBMaxConns = %d", cfg.DBMaxConns)
	}
	if cfg.SessionSweepInterval != 10*time.Minute {
		t.Fatalf("SessionSweepInterval = %v", cfg.SessionSweepInterval)
	}
	if !cfg.ReadinessRequireDB {
		t.Fatalf("ReadinessRequireDB = false")
	}
	if cfg.Env != "production" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if !cfg.TrustProxy {
		t.Fatalf("TrustProxy = false")
	}
}

func TestEnvHelpersIgnoreGarbage(t *testing.T) {
	t.Setenv("TASKFLOW_TEST_INT", "not-a-number")
	t.Setenv("TASKFLOW_TEST_DUR", "-5s")
	t.Setenv("TASKFLOW_TEST_BOOL", "maybe")

	if got := EnvInt("TASKFLOW_TEST_INT", 7); got != 7 {
		t.Fatalf("EnvInt = %d", got)
	}
	if got := EnvDuration("TASKFLOW_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("EnvDuration = %v", got)
	}
	if got := EnvBool("TASKFLOW_TEST_BOOL", true); got != true {
		t.Fatalf("EnvBool = %v", got)
	}
}
