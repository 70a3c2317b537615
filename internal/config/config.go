package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DBConnectionString   string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	JWTSecret            string
	JWTTTL               time.Duration
	RedisAddr            string
	CycleCacheTTL        time.Duration
	CycleRefreshSchedule string
	LogLevel             log.Level
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func minutes(key string, def int) time.Duration {
	return time.Duration(atoi(key, def)) * time.Minute
}

func level(key string, def log.Level) log.Level {
	if v := os.Getenv(key); v != "" {
		if l, err := log.ParseLevel(v); err == nil {
			return l
		}
	}
	return def
}

// Load reads the configuration from the environment, filling it from a .env
// file in the working directory first when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded, using process environment")
	}

	return &Config{
		Port:                 getenv("PORT", "8080"),
		DBConnectionString:   getenv("DB_CONNECTION_STRING", ""),
		DBMaxOpenConns:       atoi("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns:       atoi("DB_MAX_IDLE_CONNS", 25),
		JWTSecret:            getenv("JWT_SECRET", ""),
		JWTTTL:               minutes("JWT_TTL_MINUTES", 60),
		RedisAddr:            getenv("REDIS_ADDR", ""),
		CycleCacheTTL:        minutes("CYCLE_CACHE_TTL_MINUTES", 360),
		CycleRefreshSchedule: getenv("CYCLE_REFRESH_SCHEDULE", "@every 6h"),
		LogLevel:             level("LOG_LEVEL", log.InfoLevel),
	}
}
