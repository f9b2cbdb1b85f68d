package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Worker  WorkerConfig
	Data    DataConfig
	Alerts  AlertsConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	JWTSecret string
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DataConfig struct {
	CountiesPath     string
	DeclarationsPath string
	CentroidsPath    string
	RefreshInterval  time.Duration
}

type AlertsConfig struct {
	KafkaBrokers []string // empty disables publishing
	KafkaTopic   string
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 50),
		},
		Data: DataConfig{
			CountiesPath:     getEnv("DATA_COUNTIES_PATH", "./data/WA_Climate_Fire_Dashboard_Data.csv"),
			DeclarationsPath: getEnv("DATA_DECLARATIONS_PATH", "./data/FEMA_Disasters_Geocoded.csv"),
			CentroidsPath:    getEnv("DATA_CENTROIDS_PATH", "./data/WA_County_Centroids.geojson"),
			RefreshInterval:  getEnvDuration("DATA_REFRESH_INTERVAL", 15*time.Minute),
		},
		Alerts: AlertsConfig{
			KafkaBrokers: splitList(getEnv("ALERT_KAFKA_BROKERS", "")),
			KafkaTopic:   getEnv("ALERT_KAFKA_TOPIC", "county-risk-alerts"),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/firewatch.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Data.RefreshInterval < time.Minute {
		return fmt.Errorf("data refresh interval must be at least 1 minute")
	}
	if c.Data.CountiesPath == "" {
		return fmt.Errorf("counties data path must not be empty")
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	if len(c.Alerts.KafkaBrokers) > 0 && c.Alerts.KafkaTopic == "" {
		return fmt.Errorf("alert kafka topic must be set when brokers are configured")
	}

	return nil
}

// AlertsEnabled reports whether a Kafka alert publisher should be wired.
func (c *Config) AlertsEnabled() bool {
	return len(c.Alerts.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
