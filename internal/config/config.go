package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	SessionSecret   string
	SessionDuration time.Duration

	// Play engine timing
	GuessTimeLimit    time.Duration
	WordCompleteDelay time.Duration

	HashTeacherPin bool

	TTSEnabled bool
	AudioPath  string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Session reports via Amazon SES; disabled when SESFromEmail or ReportEmail is empty
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ReportEmail  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./wordmemo.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionSecret:     getEnv("SESSION_SECRET", "change-me-in-production"),
		SessionDuration:   getEnvDuration("SESSION_DURATION", 24*time.Hour),
		GuessTimeLimit:    getEnvDuration("GUESS_TIME_LIMIT", 60*time.Second),
		WordCompleteDelay: getEnvDuration("WORD_COMPLETE_DELAY", time.Second),
		HashTeacherPin:    getEnvBool("HASH_TEACHER_PIN", false),
		TTSEnabled:        getEnvBool("TTS_ENABLED", true),
		AudioPath:         getEnv("AUDIO_PATH", "./static/audio"),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		AWSRegion:         getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Word Memorizer"),
		ReportEmail:       getEnv("REPORT_EMAIL", ""),
		Debug:             getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %v, using default %v", key, err, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid int for %s: %v, using default %d", key, err, defaultValue)
		return defaultValue
	}
	return i
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid bool for %s: %v, using default %v", key, err, defaultValue)
		return defaultValue
	}
	return b
}
