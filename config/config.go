package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the full service configuration. Every external integration is
// optional: a missing key simply disables the collectors that need it.
type Config struct {
	ListenAddr   string
	DatabaseURL  string
	SerperKey    string
	GoogleCSEKey string
	GoogleCSECX  string
	GeminiKey    string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment, with .env as a local
// convenience.
func Load() Config {
	_ = godotenv.Load()

	addr := getenv("LISTEN_ADDR", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	return Config{
		ListenAddr:   addr,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SerperKey:    os.Getenv("SERPER_API_KEY"),
		GoogleCSEKey: os.Getenv("GOOGLE_CSE_KEY"),
		GoogleCSECX:  os.Getenv("GOOGLE_CSE_CX"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
	}
}
