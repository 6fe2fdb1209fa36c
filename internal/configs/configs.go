package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	TickIntervalSeconds    int
	DefaultDurationMinutes int
	RateLimit              int
	ShutdownTimeoutSeconds int
	JournalDSN             string
	RedisAddr              string
	RedisEventsChannel     string
	LogLevel               string
	LogFormat              string
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	var errs []error
	intVar := func(key string, defaultVal int) int {
		v, err := getEnvAsInt(key, defaultVal)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		TickIntervalSeconds:    intVar("TICK_INTERVAL_SECONDS", 1),
		DefaultDurationMinutes: intVar("DEFAULT_DURATION_MINUTES", 1),
		RateLimit:              intVar("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: intVar("SHUTDOWN_TIMEOUT_SECONDS", 10),
		JournalDSN:             getEnv("JOURNAL_DSN", "file::memory:?cache=shared"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisEventsChannel:     getEnv("REDIS_EVENTS_CHANNEL", "task_timer_events"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func validate(cfg Config) error {
	var errs []error

	if cfg.TickIntervalSeconds <= 0 {
		errs = append(errs, errors.New("TICK_INTERVAL_SECONDS must be greater than 0"))
	}
	if cfg.DefaultDurationMinutes <= 0 {
		errs = append(errs, errors.New("DEFAULT_DURATION_MINUTES must be greater than 0"))
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.JournalDSN == "" {
		errs = append(errs, errors.New("JOURNAL_DSN must not be empty"))
	}
	if cfg.RedisEnabled() && cfg.RedisEventsChannel == "" {
		errs = append(errs, errors.New("REDIS_EVENTS_CHANNEL must not be empty when REDIS_ADDR is set"))
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}
