package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Session   SessionConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Community CommunityConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogFilePath string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	URL string
}

type CommunityConfig struct {
	RelationshipCacheTTL time.Duration
	FilterDebounce       time.Duration
	StatusResolution     string
	StatusWorkers        int
}

const (
	StatusResolutionBatch   = "batch"
	StatusResolutionPerCard = "per_card"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogFilePath: opt("LOG_FILE_PATH", ""),
	}

	cfg.Backend = BackendConfig{
		BaseURL: strings.TrimRight(req("BACKEND_BASE_URL"), "/"),
		Timeout: dur("BACKEND_TIMEOUT", 10*time.Second),
	}

	cfg.Session = SessionConfig{
		Secret:       req("SESSION_SECRET"),
		TTL:          dur("SESSION_TTL", 24*time.Hour),
		CookieName:   opt("SESSION_COOKIE_NAME", "community_session"),
		CookieSecure: strings.EqualFold(opt("COOKIE_SECURE", "false"), "true"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       num("REDIS_DB", 0),
	}

	cfg.Database = DatabaseConfig{
		URL: opt("DATABASE_URL", ""),
	}

	cfg.Community = CommunityConfig{
		RelationshipCacheTTL: dur("RELATIONSHIP_CACHE_TTL", 10*time.Second),
		FilterDebounce:       dur("FILTER_DEBOUNCE", 300*time.Millisecond),
		StatusResolution:     opt("STATUS_RESOLUTION", StatusResolutionBatch),
		StatusWorkers:        num("STATUS_WORKERS", 4),
	}
	switch cfg.Community.StatusResolution {
	case StatusResolutionBatch, StatusResolutionPerCard:
	default:
		invalid = append(invalid, "STATUS_RESOLUTION")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
