package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisUsername string
	PoolSize      int
	MinIdleConns  int
	// DialTimeout bounds the startup ping as well as each dial.
	DialTimeout time.Duration
	// CatalogCacheTTL is how long a catalog snapshot stays in redis.
	// Zero disables the cache.
	CatalogCacheTTL time.Duration
}

type RecommendationConfig struct {
	DefaultLimit int
	MaxLimit     int
	HistoryLimit int
	// CatalogCap bounds how many cases are fed into a single scoring pass.
	CatalogCap int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cacheTTL, err := getEnvInt("CATALOG_CACHE_TTL", 300)
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid catalog cache ttl")
	}

	poolSize, err := getEnvInt("REDIS_POOL_SIZE", 10)
	if err != nil || poolSize <= 0 {
		return nil, errors.New("invalid redis pool size")
	}

	minIdle, err := getEnvInt("REDIS_MIN_IDLE_CONNS", 2)
	if err != nil || minIdle < 0 || minIdle > poolSize {
		return nil, errors.New("invalid redis min idle conns")
	}

	dialTimeout, err := getEnvInt("REDIS_DIAL_TIMEOUT", 5)
	if err != nil || dialTimeout <= 0 {
		return nil, errors.New("invalid redis dial timeout")
	}

	reco, err := loadRecommendationConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Crime Chronicles API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "crime_chronicles"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:       getEnv("REDIS_HOST", "localhost"),
			RedisPort:       getEnv("REDIS_PORT", "6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         redisDB,
			RedisUsername:   getEnv("REDIS_USERNAME", ""),
			PoolSize:        poolSize,
			MinIdleConns:    minIdle,
			DialTimeout:     time.Duration(dialTimeout) * time.Second,
			CatalogCacheTTL: time.Duration(cacheTTL) * time.Second,
		},
		Recommendation: reco,
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func loadRecommendationConfig() (RecommendationConfig, error) {
	defaultLimit, err := getEnvInt("RECO_DEFAULT_LIMIT", 10)
	if err != nil || defaultLimit <= 0 {
		return RecommendationConfig{}, errors.New("invalid recommendation default limit")
	}

	maxLimit, err := getEnvInt("RECO_MAX_LIMIT", 50)
	if err != nil || maxLimit < defaultLimit {
		return RecommendationConfig{}, errors.New("invalid recommendation max limit")
	}

	historyLimit, err := getEnvInt("RECO_HISTORY_LIMIT", 50)
	if err != nil || historyLimit <= 0 {
		return RecommendationConfig{}, errors.New("invalid recommendation history limit")
	}

	catalogCap, err := getEnvInt("RECO_CATALOG_CAP", 5000)
	if err != nil || catalogCap <= 0 {
		return RecommendationConfig{}, errors.New("invalid recommendation catalog cap")
	}

	return RecommendationConfig{
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
		HistoryLimit: historyLimit,
		CatalogCap:   catalogCap,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
