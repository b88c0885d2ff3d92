package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Persistence PersistenceConfig
	Redis       RedisConfig
	PlanCache   PlanCacheConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Planner     PlannerConfig
	Catalog     CatalogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// PersistenceConfig gates the Postgres-backed itinerary endpoints.
type PersistenceConfig struct {
	Enabled bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PlanCacheConfig controls caching of plan outcomes in Redis.
type PlanCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PlannerConfig holds engine defaults and request guards.
type PlannerConfig struct {
	MaxPerDay     int
	FoodAfterSlot int
	MaxNodes      int
	SearchTimeout time.Duration
	ProposalTTL   time.Duration
	MaxActivities int
}

// CatalogConfig points at the directory of YAML activity catalogs.
type CatalogConfig struct {
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}
	cfg.Persistence = PersistenceConfig{Enabled: v.GetBool("ENABLE_PERSISTENCE")}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}
	cfg.PlanCache = PlanCacheConfig{
		Enabled: v.GetBool("ENABLE_PLAN_CACHE"),
		TTL:     parseDuration(v.GetString("PLAN_CACHE_TTL"), 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Planner = PlannerConfig{
		MaxPerDay:     positiveOr(v.GetInt("PLANNER_MAX_PER_DAY"), 3),
		FoodAfterSlot: positiveOr(v.GetInt("PLANNER_FOOD_AFTER_SLOT"), 1),
		MaxNodes:      v.GetInt("PLANNER_MAX_NODES"),
		SearchTimeout: parseDuration(v.GetString("PLANNER_SEARCH_TIMEOUT"), 5*time.Second),
		ProposalTTL:   parseDuration(v.GetString("PLANNER_PROPOSAL_TTL"), 30*time.Minute),
		MaxActivities: positiveOr(v.GetInt("PLANNER_MAX_ACTIVITIES"), 200),
	}
	if cfg.Planner.MaxNodes < 0 {
		cfg.Planner.MaxNodes = 0
	}

	cfg.Catalog = CatalogConfig{Dir: v.GetString("CATALOG_DIR")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "itinerary_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("ENABLE_PERSISTENCE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENABLE_PLAN_CACHE", false)
	v.SetDefault("PLAN_CACHE_TTL", "10m")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PLANNER_MAX_PER_DAY", 3)
	v.SetDefault("PLANNER_FOOD_AFTER_SLOT", 1)
	v.SetDefault("PLANNER_MAX_NODES", 0)
	v.SetDefault("PLANNER_SEARCH_TIMEOUT", "5s")
	v.SetDefault("PLANNER_PROPOSAL_TTL", "30m")
	v.SetDefault("PLANNER_MAX_ACTIVITIES", 200)

	v.SetDefault("CATALOG_DIR", "./catalogs")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
