package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brightline-events/siteadmin/internal/util"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is used when no path is given.
const DefaultConfigFile = "config.yaml"

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// ResolveConfigPath returns path, CONFIG_PATH, or config.yaml under WRITABLE_PATH, in that order.
func ResolveConfigPath(path string) string {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return trimmed
	}
	if env, ok := lookupEnv("CONFIG_PATH"); ok && strings.TrimSpace(env) != "" {
		return strings.TrimSpace(env)
	}
	if base := util.WritablePath(); base != "" {
		return filepath.Join(base, DefaultConfigFile)
	}
	return DefaultConfigFile
}

// ConfigExists reports whether path names a readable regular file.
func ConfigExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadDotEnv loads .env into the process environment when present. Existing variables win.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if errLoad := godotenv.Load(p); errLoad != nil {
			if !errors.Is(errLoad, fs.ErrNotExist) {
				log.WithError(errLoad).Warnf("config: failed to load %s", p)
			}
			continue
		}
		log.Debugf("config: loaded environment from %s", p)
	}
}

// Load reads the YAML file at path, then applies environment overrides and defaults.
// A missing file is not an error; the environment alone can configure the server.
func Load(path string) (AppConfig, error) {
	resolved := ResolveConfigPath(path)
	cfg := AppConfig{}
	data, errRead := os.ReadFile(resolved)
	switch {
	case errRead == nil:
		if errParse := yaml.Unmarshal(data, &cfg); errParse != nil {
			return AppConfig{}, fmt.Errorf("config: parse %s: %w", resolved, errParse)
		}
	case errors.Is(errRead, fs.ErrNotExist):
		log.Debugf("config: %s not found, using environment only", resolved)
	default:
		return AppConfig{}, fmt.Errorf("config: read %s: %w", resolved, errRead)
	}
	cfg.ConfigPath = resolved

	if errEnv := cfg.applyEnv(); errEnv != nil {
		return AppConfig{}, errEnv
	}
	cfg.applyDefaults()
	if errValidate := cfg.validate(); errValidate != nil {
		return AppConfig{}, errValidate
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	setString("LISTEN_ADDR", &c.Server.Addr)
	setString("GIN_MODE", &c.Server.Mode)
	setString("DATABASE_URL", &c.Database.DSN)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FILE", &c.Logging.File)
	setString("REDIS_ADDR", &c.RateLimit.Redis.Addr)
	setString("REDIS_PASSWORD", &c.RateLimit.Redis.Password)
	setString("RATE_LIMIT_DRIVER", &c.RateLimit.Driver)

	// Credentials are taken verbatim; surrounding spaces are part of the secret.
	if v, ok := lookupEnv("ADMIN_USER"); ok && v != "" {
		c.Auth.AdminUser = v
	}
	if v, ok := lookupEnv("ADMIN_PASS"); ok && v != "" {
		c.Auth.AdminPass = v
	}

	if v, ok := lookupEnv("ADMIN_LEGACY_ENV_FALLBACK"); ok && strings.TrimSpace(v) != "" {
		enabled, errParse := strconv.ParseBool(strings.TrimSpace(v))
		if errParse != nil {
			return fmt.Errorf("config: ADMIN_LEGACY_ENV_FALLBACK: %w", errParse)
		}
		c.Auth.LegacyEnvFallback = &enabled
	}
	if v, ok := lookupEnv("CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v, ok := lookupEnv("TRUSTED_PROXIES"); ok && strings.TrimSpace(v) != "" {
		c.Server.TrustedProxies = splitList(v)
	}
	return nil
}

func (c *AppConfig) validate() error {
	switch c.RateLimit.Driver {
	case RateLimitDriverMemory:
	case RateLimitDriverRedis:
		if strings.TrimSpace(c.RateLimit.Redis.Addr) == "" {
			return fmt.Errorf("config: rate_limit.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("config: unknown rate_limit.driver %q", c.RateLimit.Driver)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
