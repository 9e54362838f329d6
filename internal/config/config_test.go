package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("TZ", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("expected postgres driver, got %q", cfg.StorageDriver)
	}
	if cfg.Timezone != "UTC" {
		t.Fatalf("expected UTC, got %q", cfg.Timezone)
	}
	if cfg.OutboxPollInterval != 2*time.Second {
		t.Fatalf("unexpected poll interval %s", cfg.OutboxPollInterval)
	}
	if cfg.SweepInterval != time.Minute {
		t.Fatalf("unexpected sweep interval %s", cfg.SweepInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("APP_TIMEZONE", "Africa/Lagos")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LIFECYCLE_SWEEP_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.StorageDriver != StorageDriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StorageDriver)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.KafkaBrokers != "k1:9092,k2:9092" {
		t.Fatalf("unexpected brokers %q", cfg.KafkaBrokers)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.SweepInterval != 0 {
		t.Fatalf("expected disabled sweeper, got %s", cfg.SweepInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"STORAGE_DRIVER", "sqlite"},
		"timezone": {"APP_TIMEZONE", "Mars/Olympus"},
		"duration": {"OUTBOX_POLL_INTERVAL", "soon"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
