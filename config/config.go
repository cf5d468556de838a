package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	// JWTSecret, when set, is the symmetric signing key for session tokens.
	// When empty the server generates a random key at startup, which means a
	// restart invalidates all previously issued tokens.
	JWTSecret       string
	TokenTTLMinutes int
	Database        DatabaseConfig
}

type DatabaseConfig struct {
	URI  string
	Name string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		URI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Name: getEnv("MONGO_DB", "DeliverEase"),
	}

	return Config{
		ServerPort:      getEnvInt("SERVER_PORT", 8080),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 1440),
		Database:        dbConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
