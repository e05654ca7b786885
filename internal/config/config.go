package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server's runtime configuration, loaded once at
// startup from the environment.
type Config struct {
	ListenAddr string

	DatabaseURL string

	StaticDataDir string // directory containing timetable + coordinates.json files

	GTFSRTBaseURL string // base URL the TripUpdate feed is fetched from per line
	APIKey        string

	FeedTimeout time.Duration

	ServiceTimezone string

	CORSAllowedOrigins []string
}

// Load reads .env then .env.local (the latter overriding) the way the
// teacher's main.go does, then builds a Config from the environment.
func Load() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/trainpos"),
		StaticDataDir:   getEnv("STATIC_DATA_DIR", "./data"),
		GTFSRTBaseURL:   getEnv("GTFS_RT_BASE_URL", "https://api.odpt.org/api/v4/gtfs/realtime/odpt_train_jreast"),
		APIKey:          getEnv("ODPT_API_KEY", ""),
		FeedTimeout:     time.Duration(getEnvInt("FEED_TIMEOUT_SECONDS", 10)) * time.Second,
		ServiceTimezone: getEnv("SERVICE_TIMEZONE", "Asia/Tokyo"),
		CORSAllowedOrigins: getEnvList("FRONTEND_URL", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, value[start:i])
			}
			start = i + 1
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
