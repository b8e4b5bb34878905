package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kanjidojo/kanji-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config application configuration
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	CORS      CORSConfig      `yaml:"cors"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// DatabaseConfig covers both MySQL (host/port/user) and SQLite (path)
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	Path            string `yaml:"path"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token lifetimes are in seconds
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"`
	RefreshIn int    `yaml:"refresh_in"`
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	TTL     int  `yaml:"ttl"` // seconds
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// GetDSN builds the MySQL DSN. Times are parsed into UTC.
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.DBName)
}

// IsDevelopment reports whether the app runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	switch c.App.Env {
	case "", "local", "dev", "development", "test":
		return true
	}
	return false
}

// Load reads the YAML file at path (if present), then applies defaults and
// environment overrides. ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults + env only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return errors.New("jwt.secret is required outside development")
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.App.Name == "" {
		c.App.Name = "kanji-backend"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Path == "" {
		c.Database.Path = "kanji.db"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.JWT.ExpiresIn == 0 {
		c.JWT.ExpiresIn = 900
	}
	if c.JWT.RefreshIn == 0 {
		c.JWT.RefreshIn = 7 * 24 * 3600
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 300
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
}

func applyEnv(c *Config) {
	setString(&c.App.Env, "APP_ENV")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.Path, "DB_PATH")
	setBool(&c.Redis.Enabled, "REDIS_ENABLED")
	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// LogResolved prints the effective configuration with secrets masked
func LogResolved(c *Config) {
	logger.GetLogger().Info().
		Str("env", c.App.Env).
		Int("port", c.Server.Port).
		Str("db_driver", c.Database.Driver).
		Str("db_target", dbTarget(c.Database)).
		Bool("redis", c.Redis.Enabled).
		Str("redis_addr", fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)).
		Str("jwt_secret", mask(c.JWT.Secret)).
		Str("cors", c.CORS.AllowOrigins).
		Bool("cache", c.Cache.Enabled).
		Msg("config resolved")
}

func dbTarget(d DatabaseConfig) string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.DBName)
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
