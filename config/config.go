package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr string
}

// Load reads an optional .env file, then the environment. A missing
// .env is fine: deployment platforms inject PORT directly.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment variables from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}
	return Config{Addr: ":" + port}
}
