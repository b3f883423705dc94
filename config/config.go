package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	JWTSecret         string
	AdminPasswordHash string
	TokenTTLHours     int
	FrontendURL       string
	// API client configuration (admin console side)
	APIHostname string
	APIPort     string
	// SMTP Configuration (contact form)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	ContactEmailTo string
	// Redis Configuration (login rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitLoginThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3001"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenTTLHours:     getEnvInt("TOKEN_TTL_HOURS", 24),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		APIHostname:       getEnv("API_HOSTNAME", ""),
		APIPort:           getEnv("API_PORT", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		ContactEmailTo:    getEnv("CONTACT_EMAIL_TO", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold: getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 5),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Admin login will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// APIBaseURL resolves the backend base URL for API clients. Hostname and port
// come from the environment; missing pieces fall back to localhost:3001.
func (c *Config) APIBaseURL() string {
	switch {
	case c.APIHostname != "" && c.APIPort != "":
		return fmt.Sprintf("http://%s:%s", c.APIHostname, c.APIPort)
	case c.APIHostname != "":
		return fmt.Sprintf("http://%s:3001", c.APIHostname)
	case c.APIPort != "":
		return fmt.Sprintf("http://localhost:%s", c.APIPort)
	default:
		return "http://localhost:3001"
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
