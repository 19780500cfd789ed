package config

import (
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default HTTP addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL default, got %q", cfg.DBURL)
	}
	if !cfg.TransferBudgetEnforced {
		t.Fatalf("expected transfer budget enforcement on by default")
	}
	if cfg.StatsFeedTimeout != 20*time.Second {
		t.Fatalf("expected default statsfeed timeout 20s, got %s", cfg.StatsFeedTimeout)
	}
	if cfg.GameWeekCloseInterval != 5*time.Minute {
		t.Fatalf("expected default close interval 5m, got %s", cfg.GameWeekCloseInterval)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("expected default log level info, got %v", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_StatsFeedRequiresAPIKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STATSFEED_ENABLED", "true")
	t.Setenv("STATSFEED_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STATSFEED_ENABLED=true without STATSFEED_API_KEY")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_TransferBudgetFlag(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TRANSFER_BUDGET_ENFORCED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TransferBudgetEnforced {
		t.Fatalf("expected budget enforcement off")
	}
}

func TestLoad_InvalidCloseInterval(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GAMEWEEK_CLOSE_INTERVAL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive GAMEWEEK_CLOSE_INTERVAL")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}
