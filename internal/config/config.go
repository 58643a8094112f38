package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Admin    AdminConfig
	Session  SessionConfig
	Telegram TelegramConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

// StoreConfig selects where the event catalog lives. In "local" mode events
// persist in an embedded SQLite file; in "remote" mode every read and write
// goes to an external event API.
type StoreConfig struct {
	Mode       string
	DataPath   string
	APIBaseURL string
	APIToken   string
}

type AdminConfig struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

type SessionConfig struct {
	Secret string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	StoreModeLocal  = "local"
	StoreModeRemote = "remote"
)

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Store: StoreConfig{
			Mode:       getEnv("STORE_MODE", StoreModeLocal),
			DataPath:   getEnv("STORE_DATA_PATH", "data/catalog.db"),
			APIBaseURL: getEnv("STORE_API_BASE_URL", ""),
			APIToken:   getEnv("STORE_API_TOKEN", ""),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", "change-me-in-production"),
			TokenTTL:     getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS",
				[]string{"http://localhost:3000", "http://localhost:5173"}),
		},
	}

	if config.Store.Mode != StoreModeLocal && config.Store.Mode != StoreModeRemote {
		return nil, fmt.Errorf("invalid STORE_MODE %q: must be %q or %q",
			config.Store.Mode, StoreModeLocal, StoreModeRemote)
	}
	if config.Store.Mode == StoreModeRemote && config.Store.APIBaseURL == "" {
		// Mirror the storefront convention: a dev server on 3001, the
		// deployed app behind the same origin.
		if config.IsDevelopment() {
			config.Store.APIBaseURL = "http://localhost:3001/api"
		} else {
			config.Store.APIBaseURL = "/api"
		}
	}

	return config, nil
}

// IsDevelopment returns true when running in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true when running in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
