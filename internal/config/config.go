package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis (optional; empty disables the message-list cache)
	RedisURL string

	// Ollama generation endpoint
	OllamaURL            string
	OllamaModel          string
	OllamaTimeoutSeconds int

	// Password hashing
	BcryptCost int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    getEnvOrDefault("REDIS_URL", ""),
		OllamaURL:   mustGetEnv("OLLAMA_URL"),
		OllamaModel: getEnvOrDefault("OLLAMA_MODEL", "llama3.2"),
		// Generation latency dominates; premature timeout is worse than
		// a slow response.
		OllamaTimeoutSeconds: getEnvAsIntOrDefault("OLLAMA_TIMEOUT_SECONDS", 600),
		BcryptCost:           getEnvAsIntOrDefault("BCRYPT_COST", 12),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
