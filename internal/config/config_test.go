package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POLL_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("POLL_ENABLED", "false")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "matchsync-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "matchsync-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_ResultCacheTTLParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("default", func(t *testing.T) {
		t.Setenv("RESULT_CACHE_TTL", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ResultCacheTTL != time.Hour {
			t.Fatalf("unexpected default result cache ttl: %s", cfg.ResultCacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("RESULT_CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid RESULT_CACHE_TTL")
		}
	})
}

func TestLoad_APIFootballConfigParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.APIFootballBaseURL != "https://v3.football.api-sports.io" {
			t.Fatalf("unexpected default base url: %q", cfg.APIFootballBaseURL)
		}
		if cfg.APIFootballTimeout != 20*time.Second {
			t.Fatalf("unexpected default timeout: %s", cfg.APIFootballTimeout)
		}
		if !cfg.APIFootballCircuitEnabled {
			t.Fatalf("expected circuit breaker enabled by default")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APIFOOTBALL_BASE_URL", "http://localhost:9090")
		t.Setenv("APIFOOTBALL_KEY", "key-123")
		t.Setenv("APIFOOTBALL_TIMEOUT", "5s")
		t.Setenv("APIFOOTBALL_MAX_RETRIES", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.APIFootballBaseURL != "http://localhost:9090" || cfg.APIFootballKey != "key-123" {
			t.Fatalf("unexpected provider config: %+v", cfg)
		}
		if cfg.APIFootballTimeout != 5*time.Second || cfg.APIFootballMaxRetries != 3 {
			t.Fatalf("unexpected provider timing config: %+v", cfg)
		}
	})
}

func TestLoad_PollRequiresProviderKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POLL_ENABLED", "true")
	t.Setenv("APIFOOTBALL_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when POLL_ENABLED=true without APIFOOTBALL_KEY")
	}
}

func TestLoad_PollConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POLL_ENABLED", "true")
	t.Setenv("APIFOOTBALL_KEY", "key-123")
	t.Setenv("POLL_DISCOVERY_INTERVAL", "2m")
	t.Setenv("POLL_SYNC_INTERVAL", "30s")
	t.Setenv("POLL_MAX_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PollEnabled {
		t.Fatalf("expected PollEnabled=true")
	}
	if cfg.PollDiscoveryInterval != 2*time.Minute || cfg.PollSyncInterval != 30*time.Second {
		t.Fatalf("unexpected poll intervals: %+v", cfg)
	}
	if cfg.PollMaxWorkers != 8 {
		t.Fatalf("unexpected poll workers: %d", cfg.PollMaxWorkers)
	}
}

func TestLoad_WebhookConfigParsing(t *testing.T) {
	setBaseEnv(t)

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.WebhookEnabled {
			t.Fatalf("expected WebhookEnabled=false by default")
		}
	})

	t.Run("enabled requires url", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "true")
		t.Setenv("WEBHOOK_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when WEBHOOK_ENABLED=true without WEBHOOK_URL")
		}
	})

	t.Run("enabled with values", func(t *testing.T) {
		t.Setenv("WEBHOOK_ENABLED", "true")
		t.Setenv("WEBHOOK_URL", "https://consumer.example.com/hooks/matchsync")
		t.Setenv("WEBHOOK_SECRET", "hook-secret")
		t.Setenv("WEBHOOK_RETRIES", "4")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.WebhookEnabled || cfg.WebhookURL != "https://consumer.example.com/hooks/matchsync" {
			t.Fatalf("unexpected webhook config: %+v", cfg)
		}
		if cfg.WebhookSecret != "hook-secret" || cfg.WebhookRetries != 4 {
			t.Fatalf("unexpected webhook secret/retries: %+v", cfg)
		}
	})
}
