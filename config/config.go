package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/void-adarsh/Notes-App/internal/logger"
)

const (
	DefaultEnv                   = "development"
	DefaultPort                  = "5000"
	DefaultTokenExpiryMin        = 1440
	DefaultBcryptCost            = 10
	DefaultRateLimitWindowMs     = 900000
	DefaultRateLimitMax          = 100
	DefaultRateLimitMaxClients   = 100000
	DefaultRateLimitSweepSeconds = 60
	DefaultDBMaxConns            = 10
	DefaultLogLevel              = "info"
)

type Config struct {
	Env      string
	Port     string
	DBURL    string
	LogLevel string

	JWTSecret      string
	TokenExpiryMin int
	BcryptCost     int

	RateLimitWindowMs     int
	RateLimitMax          int
	RateLimitMaxClients   int
	RateLimitSweepSeconds int
	ProxyHeader           string

	DBMaxConns     int
	MigrateOnStart bool
}

// Load reads config/.env.dev, or config/.env.prod when ENV=production.
// Process environment variables take precedence over file values.
func Load() *Config {
	env := getEnv("ENV", DefaultEnv)

	file := ".env.dev"
	if env == "production" {
		file = ".env.prod"
	}

	values, err := godotenv.Read(filepath.Join("config", file))
	if err != nil {
		logger.Logger().Debug("config file not loaded", zap.String("file", file), zap.Error(err))
		values = map[string]string{}
	}
	l := &loader{file: values}

	return &Config{
		Env:      env,
		Port:     l.get("PORT", DefaultPort),
		DBURL:    l.must("DB_URL"),
		LogLevel: l.get("LOG_LEVEL", DefaultLogLevel),

		JWTSecret:      l.must("JWT_SECRET"),
		TokenExpiryMin: l.getInt("TOKEN_EXPIRY_MINUTES", DefaultTokenExpiryMin),
		BcryptCost:     l.getIntInRange("BCRYPT_COST", DefaultBcryptCost, bcrypt.MinCost, bcrypt.MaxCost),

		RateLimitWindowMs:     l.getInt("RATE_LIMIT_WINDOW_MS", DefaultRateLimitWindowMs),
		RateLimitMax:          l.getInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		RateLimitMaxClients:   l.getInt("RATE_LIMIT_MAX_CLIENTS", DefaultRateLimitMaxClients),
		RateLimitSweepSeconds: l.getInt("RATE_LIMIT_SWEEP_SECONDS", DefaultRateLimitSweepSeconds),
		ProxyHeader:           l.get("PROXY_HEADER", ""),

		DBMaxConns:     l.getInt("DB_MAX_CONNS", DefaultDBMaxConns),
		MigrateOnStart: l.getBool("MIGRATE_ON_START", true),
	}
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

type loader struct {
	file map[string]string
}

func (l *loader) get(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := l.file[key]; value != "" {
		return value
	}
	return defaultVal
}

func (l *loader) must(key string) string {
	if value := l.get(key, ""); value != "" {
		return value
	}
	logger.Logger().Fatal("Missing required config: " + key)
	return ""
}

func (l *loader) getInt(key string, defaultVal int) int {
	valStr := l.get(key, "")
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		logger.Logger().Warn("invalid integer config, using default",
			zap.String("key", key), zap.String("value", valStr), zap.Int("default", defaultVal))
		return defaultVal
	}
	return val
}

func (l *loader) getIntInRange(key string, defaultVal, min, max int) int {
	val := l.getInt(key, defaultVal)
	if val < min || val > max {
		logger.Logger().Warn("integer config out of range, using default",
			zap.String("key", key), zap.Int("value", val), zap.Int("min", min), zap.Int("max", max),
			zap.Int("default", defaultVal))
		return defaultVal
	}
	return val
}

func (l *loader) getBool(key string, defaultVal bool) bool {
	valStr := l.get(key, "")
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		logger.Logger().Warn("invalid boolean config, using default",
			zap.String("key", key), zap.String("value", valStr), zap.Bool("default", defaultVal))
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
