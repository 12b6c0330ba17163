package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	SessionTTL    time.Duration
}

func LoadConfig() *Config {
	// .env is a local development convenience; deployments use real
	// environment variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	return &Config{
		Env:           getEnv("ENV", "dev"),
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDB:       getEnv("MONGO_DB", "catalogAdmin"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionTTL:    getDuration("SESSION_TTL", 12*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
