package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	orderkafka "github.com/Apurer/order-management-api/internal/domains/orders/adapters/events/kafka"
	"github.com/Apurer/order-management-api/internal/platform/database"
)

// Config carries file and environment driven settings for the order processes.
type Config struct {
	Port            string         `yaml:"port"`
	Database        DatabaseConfig `yaml:"database"`
	Temporal        TemporalConfig `yaml:"temporal"`
	Kafka           KafkaConfig    `yaml:"kafka"`
	ShutdownTimeout time.Duration  `yaml:"-"`
	// ShutdownTimeoutSeconds is the YAML form of ShutdownTimeout.
	ShutdownTimeoutSeconds int `yaml:"shutdownTimeoutSeconds"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"autoMigrate"`
}

type TemporalConfig struct {
	Address   string `yaml:"address"`
	Namespace string `yaml:"namespace"`
	Disabled  bool   `yaml:"disabled"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func defaultConfig() Config {
	return Config{
		Port:     "8080",
		Database: DatabaseConfig{Driver: database.DriverPostgres},
		Temporal: TemporalConfig{
			Address:   client.DefaultHostPort,
			Namespace: client.DefaultNamespace,
		},
		Kafka:                  KafkaConfig{Topic: orderkafka.DefaultTopic},
		ShutdownTimeoutSeconds: 10,
	}
}

// LoadConfig reads the optional YAML file named by ORDERS_CONFIG_FILE, overlays
// environment variables, applies defaults, and validates the result.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("ORDERS_CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.Database.Driver = envDefault("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envDefault("POSTGRES_DSN", cfg.Database.DSN)
	cfg.Database.DSN = envDefault("DATABASE_DSN", cfg.Database.DSN)
	if raw, ok := lookupEnv("DB_AUTO_MIGRATE"); ok {
		cfg.Database.AutoMigrate = isTruthy(raw)
	}
	cfg.Temporal.Address = envDefault("TEMPORAL_ADDRESS", cfg.Temporal.Address)
	cfg.Temporal.Namespace = envDefault("TEMPORAL_NAMESPACE", cfg.Temporal.Namespace)
	if raw, ok := lookupEnv("TEMPORAL_DISABLED"); ok {
		cfg.Temporal.Disabled = isTruthy(raw)
	}
	if raw, ok := lookupEnv("KAFKA_BROKERS"); ok {
		cfg.Kafka.Brokers = orderkafka.ParseBrokers(raw)
	}
	cfg.Kafka.Topic = envDefault("KAFKA_TOPIC", cfg.Kafka.Topic)
	if raw, ok := lookupEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ShutdownTimeoutSeconds = seconds
	}
	cfg.ShutdownTimeout = time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the constraints LoadConfig cannot express as defaults.
func (c Config) Validate() error {
	var errs []error
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}
	switch strings.ToLower(c.Database.Driver) {
	case database.DriverPostgres, database.DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", database.DriverPostgres, database.DriverMySQL, c.Database.Driver))
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return fallback
}

func lookupEnv(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
