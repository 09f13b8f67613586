package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	// DataDir holds notes.db; empty means the platform data directory.
	DataDir string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Env:      GetEnv("LABRAIN_ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "warn"),
		DataDir:  GetEnv("LABRAIN_DATA_DIR", ""),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
