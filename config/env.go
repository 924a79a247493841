package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv reads a local .env when present. A missing file is normal in
// deployed environments, so it only warns.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("No .env file loaded, using process environment:", err)
	}
}
