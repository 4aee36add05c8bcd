package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// redis, keeps the tip carousel sessions and the rate limiter counters
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// tips carousel
	TipsCsvPath         string `toml:"tips_csv_path"`
	TipsSessionTTLHours int    `toml:"tips_session_ttl_hours"`
	// calculator endpoints rate limiting
	CalcRateLimitAllowedPerMin int `toml:"calc_rate_limit_allowed_per_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	tomlData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var conf Toml
	if _, err := toml.Decode(string(tomlData), &conf); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := conf.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}

	cfg.Environment = env

	return cfg, nil
}
