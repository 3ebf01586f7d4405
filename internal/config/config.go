package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// StorageMode selects the backing store for identified sessions.
type StorageMode string

const (
	// StorageModeLocal keeps every session on the local JSON blob store,
	// even when an identity is present. Used for offline deployments.
	StorageModeLocal StorageMode = "local"
	// StorageModeRemote syncs identified sessions to the remote
	// collection store; anonymous sessions stay local.
	StorageModeRemote StorageMode = "remote"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Local blob store
	DataDir string

	// Storage
	StorageMode StorageMode

	// Database (remote collection store)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity token verification (tokens are issued by the external
	// auth provider; we only verify them)
	JWTSecret string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("ENV", "development"),
		DataDir: getEnv("DATA_DIR", "data"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "securitycash"),
		DBPassword: getEnv("DB_PASSWORD", "securitycash"),
		DBName:     getEnv("DB_NAME", "securitycash"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	mode := StorageMode(getEnv("STORAGE_MODE", string(StorageModeRemote)))
	if mode != StorageModeLocal && mode != StorageModeRemote {
		log.Printf("Warning: invalid STORAGE_MODE value '%s', falling back to remote\n", mode)
		mode = StorageModeRemote
	}
	config.StorageMode = mode

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
