package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultSecret 开发环境默认密钥，生产环境禁止使用
const DefaultSecret = "your-secret-key-change-in-production"

// DefaultConfigFile 未指定 --config 时在工作目录查找的文件
const DefaultConfigFile = "seriestrack.toml"

// Database 数据库连接配置
type Database struct {
	URL          string `toml:"url"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Host         string `toml:"host"`
	Port         string `toml:"port"`
	Name         string `toml:"name"`
	SSLMode      string `toml:"sslmode"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DSN 优先使用完整 URL，否则由各项参数拼接
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Config 应用配置
type Config struct {
	Env                 string
	Port                string
	AppSecret           string
	JWTExpiry           time.Duration
	Database            Database
	RedisURL            string
	CORSOrigins         []string
	LoginMaxFailures    int
	LoginLockoutWindow  time.Duration
	RevocationCacheSize int
	LogMode             string
	OTelEnabled         bool
	AutoMigrate         bool
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// fileConfig TOML 文件结构，时长以字符串表示（如 "12h"、"7d"）
type fileConfig struct {
	Env                 string   `toml:"env"`
	Port                string   `toml:"port"`
	AppSecret           string   `toml:"app_secret"`
	JWTExpiresIn        string   `toml:"jwt_expires_in"`
	Database            Database `toml:"database"`
	RedisURL            string   `toml:"redis_url"`
	CORSOrigins         []string `toml:"cors_origins"`
	LoginMaxFailures    int      `toml:"login_max_failures"`
	LoginLockoutWindow  string   `toml:"login_lockout_window"`
	RevocationCacheSize int      `toml:"revocation_cache_size"`
	LogMode             string   `toml:"log_mode"`
	OTelEnabled         bool     `toml:"otel_enabled"`
	AutoMigrate         bool     `toml:"auto_migrate"`
}

func defaults() fileConfig {
	return fileConfig{
		Env:          "development",
		Port:         "5005",
		AppSecret:    DefaultSecret,
		JWTExpiresIn: "1d",
		Database: Database{
			User:         "postgres",
			Password:     "postgres",
			Host:         "localhost",
			Port:         "5432",
			Name:         "seriestrack",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 10,
		},
		CORSOrigins:         []string{"*"},
		LoginMaxFailures:    5,
		LoginLockoutWindow:  "15m",
		RevocationCacheSize: 10000,
	}
}

// Load 加载配置：默认值 → TOML 文件 → 环境变量
// path 为空时尝试工作目录下的 seriestrack.toml，不存在则跳过
func Load(path string) (*Config, error) {
	fc := defaults()

	if err := readFile(path, &fc); err != nil {
		return nil, err
	}
	applyEnv(&fc)

	cfg, err := fc.build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, fc *fileConfig) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(fc *fileConfig) {
	fc.Env = getEnv("APP_ENV", fc.Env)
	fc.Port = getEnv("PORT", fc.Port)
	fc.AppSecret = getEnv("APP_SECRET", getEnv("JWT_SECRET", fc.AppSecret))

	// JWT_EXPIRES_IN 优先，兼容旧的 JWT_EXPIRY_HOURS
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		fc.JWTExpiresIn = v
	} else if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		fc.JWTExpiresIn = v + "h"
	}

	db := &fc.Database
	db.URL = getEnv("DATABASE_URL", db.URL)
	db.User = getEnv("DB_USER", getEnv("PGUSER", db.User))
	db.Password = getEnv("DB_PASSWORD", getEnv("PGPASSWORD", db.Password))
	db.Host = getEnv("DB_HOST", getEnv("PGHOST", db.Host))
	db.Port = getEnv("DB_PORT", getEnv("PGPORT", db.Port))
	db.Name = getEnv("DB_NAME", getEnv("PGDATABASE", db.Name))
	db.SSLMode = getEnv("DB_SSLMODE", getEnv("PGSSLMODE", db.SSLMode))
	db.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)

	fc.RedisURL = getEnv("REDIS_URL", fc.RedisURL)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		fc.CORSOrigins = splitList(v)
	}
	fc.LoginMaxFailures = getEnvInt("LOGIN_MAX_FAILURES", fc.LoginMaxFailures)
	fc.LoginLockoutWindow = getEnv("LOGIN_LOCKOUT_WINDOW", fc.LoginLockoutWindow)
	fc.RevocationCacheSize = getEnvInt("REVOCATION_CACHE_SIZE", fc.RevocationCacheSize)
	fc.LogMode = getEnv("LOG_MODE", fc.LogMode)
	fc.OTelEnabled = getEnvBool("OTEL_ENABLED", fc.OTelEnabled)
	fc.AutoMigrate = getEnvBool("AUTO_MIGRATE", fc.AutoMigrate)
}

func (fc fileConfig) build() (*Config, error) {
	expiry, err := ParseDuration(fc.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("jwt_expires_in: %w", err)
	}
	window, err := ParseDuration(fc.LoginLockoutWindow)
	if err != nil {
		return nil, fmt.Errorf("login_lockout_window: %w", err)
	}

	logMode := fc.LogMode
	if logMode == "" {
		logMode = fc.Env
	}

	return &Config{
		Env:                 fc.Env,
		Port:                fc.Port,
		AppSecret:           fc.AppSecret,
		JWTExpiry:           expiry,
		Database:            fc.Database,
		RedisURL:            fc.RedisURL,
		CORSOrigins:         fc.CORSOrigins,
		LoginMaxFailures:    fc.LoginMaxFailures,
		LoginLockoutWindow:  window,
		RevocationCacheSize: fc.RevocationCacheSize,
		LogMode:             logMode,
		OTelEnabled:         fc.OTelEnabled,
		AutoMigrate:         fc.AutoMigrate,
	}, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.AppSecret == "" {
		errs = append(errs, errors.New("app secret is required"))
	}
	if c.IsProduction() && c.AppSecret == DefaultSecret {
		errs = append(errs, errors.New("生产环境禁止使用默认密钥，请设置 APP_SECRET"))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("jwt expiry must be positive"))
	}
	if c.LoginMaxFailures < 0 {
		errs = append(errs, errors.New("login_max_failures must be >= 0"))
	}
	if c.RevocationCacheSize <= 0 {
		errs = append(errs, errors.New("revocation_cache_size must be positive"))
	}
	return errors.Join(errs...)
}

// ParseDuration 支持 Go 时长格式以及 "7d" 形式的天数
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
