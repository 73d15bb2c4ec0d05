package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ORDERS_CONFIG_FILE", "PORT", "DB_DRIVER", "DATABASE_DSN", "POSTGRES_DSN", "DB_AUTO_MIGRATE",
		"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Empty(t, cfg.Database.DSN)
	require.Equal(t, "orders.events", cfg.Kafka.Topic)
	require.Empty(t, cfg.Kafka.Brokers)
	require.False(t, cfg.Temporal.Disabled)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
database:
  driver: mysql
  dsn: "orders:secret@tcp(db:3306)/orders?parseTime=true"
  autoMigrate: true
temporal:
  namespace: orders
  disabled: true
kafka:
  brokers: ["kafka-1:9092"]
shutdownTimeoutSeconds: 3
`), 0o600))
	t.Setenv("ORDERS_CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "kafka-2:9092,kafka-3:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Contains(t, cfg.Database.DSN, "tcp(db:3306)")
	require.True(t, cfg.Database.AutoMigrate)
	require.Equal(t, "orders", cfg.Temporal.Namespace)
	require.True(t, cfg.Temporal.Disabled)
	require.Equal(t, []string{"kafka-2:9092", "kafka-3:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_DatabaseDSNWinsOverPostgresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://legacy")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres://legacy", cfg.Database.DSN)

	t.Setenv("DATABASE_DSN", "postgres://current")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres://current", cfg.Database.DSN)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":       {"DB_DRIVER": "sqlite"},
		"port":         {"PORT": "http"},
		"timeout":      {"SHUTDOWN_TIMEOUT_SECONDS": "0"},
		"timeout text": {"SHUTDOWN_TIMEOUT_SECONDS": "soon"},
		"missing file": {"ORDERS_CONFIG_FILE": "/nonexistent/orders.yaml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
