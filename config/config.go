package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	DatabaseURL  string // DB_CONNECTION_STRING
	JWTSecret    string // JWT_SECRET, signs session tokens
	Addr         string // LISTEN_ADDR
	UploadsDir   string // UPLOADS_DIR, served publicly under /uploads
	ClientDir    string // CLIENT_DIR, static single-page client
	ClientOrigin string // CLIENT_ORIGIN, allowed CORS origin
}

// Load reads the process configuration. A .env file is honored in
// development; real environment variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded (this is normal in production)")
	}

	cfg := &Config{
		DatabaseURL:  os.Getenv("DB_CONNECTION_STRING"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Addr:         getEnvDefault("LISTEN_ADDR", ":4000"),
		UploadsDir:   getEnvDefault("UPLOADS_DIR", "./uploads"),
		ClientDir:    getEnvDefault("CLIENT_DIR", "./client"),
		ClientOrigin: getEnvDefault("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DB_CONNECTION_STRING environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
