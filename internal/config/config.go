package config

import "time"

// AppConfig is the full server configuration, read once at startup.
type AppConfig struct {
	ConfigPath string `yaml:"-"`

	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	Mode           string   `yaml:"mode"`            // gin mode: debug, release or test.
	TrustedProxies []string `yaml:"trusted_proxies"` // Proxies allowed to set X-Forwarded-For.
	CORSOrigins    []string `yaml:"cors_origins"`
	ShutdownGrace  int      `yaml:"shutdown_grace_seconds"`
}

// DatabaseConfig selects the credential and content database. An empty DSN disables both.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// AuthConfig holds the admin credential policy.
type AuthConfig struct {
	AdminUser         string `yaml:"admin_user"`
	AdminPass         string `yaml:"admin_pass"`
	LegacyEnvFallback *bool  `yaml:"legacy_env_fallback"` // Defaults to true.
	BcryptCost        int    `yaml:"bcrypt_cost"`
	LockThreshold     int    `yaml:"lock_threshold"`
	LockMinutes       int    `yaml:"lock_minutes"`
}

// LegacyFallbackEnabled reports whether unknown database usernames may match ADMIN_USER/ADMIN_PASS.
func (c AuthConfig) LegacyFallbackEnabled() bool {
	return c.LegacyEnvFallback == nil || *c.LegacyEnvFallback
}

// LockDuration returns the lockout length.
func (c AuthConfig) LockDuration() time.Duration {
	return time.Duration(c.LockMinutes) * time.Minute
}

// Rate limiter drivers.
const (
	RateLimitDriverMemory = "memory"
	RateLimitDriverRedis  = "redis"
)

// RateLimitConfig configures per-IP throttling of failed logins.
type RateLimitConfig struct {
	Driver        string      `yaml:"driver"`
	MaxAttempts   int         `yaml:"max_attempts"`
	WindowMinutes int         `yaml:"window_minutes"`
	Redis         RedisConfig `yaml:"redis"`
}

// Window returns the fixed window length.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// RedisConfig holds the shared limiter connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LoggingConfig configures logrus and the optional rotating file sink.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownGrace <= 0 {
		c.Server.ShutdownGrace = 10
	}
	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = 12
	}
	if c.Auth.LockThreshold <= 0 {
		c.Auth.LockThreshold = 5
	}
	if c.Auth.LockMinutes <= 0 {
		c.Auth.LockMinutes = 15
	}
	if c.RateLimit.Driver == "" {
		c.RateLimit.Driver = RateLimitDriverMemory
	}
	if c.RateLimit.MaxAttempts <= 0 {
		c.RateLimit.MaxAttempts = 5
	}
	if c.RateLimit.WindowMinutes <= 0 {
		c.RateLimit.WindowMinutes = 15
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 20
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 30
	}
}
