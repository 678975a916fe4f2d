package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Environment string

	// Runner side.
	BackendURL  string
	HTTPTimeout time.Duration
	LessonID    string

	// Mock backend tuning.
	HeartsCapacity  int
	HeartsRefill    time.Duration
	PassPercent     int
	ContentWorkbook string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Environment: getEnv("ENVIRONMENT", "development"),

		BackendURL:  getEnv("BACKEND_URL", "http://127.0.0.1:8080"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		LessonID:    getEnv("LESSON_ID", "lesson-basics-1"),

		HeartsCapacity:  getEnvInt("HEARTS_CAPACITY", 5),
		HeartsRefill:    getEnvDuration("HEARTS_REFILL_INTERVAL", 30*time.Minute),
		PassPercent:     getEnvInt("PASS_PERCENT", 70),
		ContentWorkbook: getEnv("CONTENT_WORKBOOK", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
