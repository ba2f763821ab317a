package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

var ErrMissingAPIURL = errors.New("API_URL (or VITE_API_URL) is required")

type Config struct {
	APIURL     string        `envconfig:"API_URL"`
	ViteAPIURL string        `envconfig:"VITE_API_URL"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"0s"`

	Port string `envconfig:"PORT" default:"8080"`

	CacheBackend string `envconfig:"CACHE_BACKEND" default:"file"`
	CacheDir     string `envconfig:"CACHE_DIR" default:".cache"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPrefix  string `envconfig:"REDIS_PREFIX" default:"inventario:"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`

	ConfirmSecret string  `envconfig:"CONFIRM_SECRET"`
	MutationRate  float64 `envconfig:"MUTATION_RATE" default:"5"`
	MutationBurst int     `envconfig:"MUTATION_BURST" default:"10"`
}

// Load reads an optional .env file and then the environment. It is meant to
// run once at startup.
func Load(log *zap.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("error loading .env file (continuing)", zap.Error(err))
	} else if err == nil {
		log.Info("loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	log.Info("configuration loaded",
		zap.String("api_url", cfg.APIURL),
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.APIURL == "" {
		c.APIURL = c.ViteAPIURL
	}
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return ErrMissingAPIURL
	}

	c.CacheBackend = strings.ToLower(strings.TrimSpace(c.CacheBackend))
	switch c.CacheBackend {
	case "file", "redis", "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres cache backend")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.ConfirmSecret == "" {
		c.ConfirmSecret = uuid.NewString() + uuid.NewString()
	}
	return nil
}
