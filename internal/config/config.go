package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port            string
	DBDriver        string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	CheckoutRetries int
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional, variables may come from the environment
		log.Println("no .env file loaded, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	return &Config{
		Port:            getenv("APP_PORT", "8080"),
		DBDriver:        getenv("DB_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       jwtSecret(),
		TokenTTL:        getDuration("TOKEN_TTL", 24*time.Hour),
		CheckoutRetries: getInt("CHECKOUT_RETRIES", 3),
	}
}

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. Development only.
const DefaultJWTSecret = "change-me"

func jwtSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	log.Println("WARNING: JWT_SECRET is not set, signing tokens with the insecure development default")
	return DefaultJWTSecret
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
