package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	// Demo mode: anonymous visitors browse a named demo organization
	// read-only instead of being redirected to login.
	DemoMode    bool
	DemoOrgName string

	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DemoMode:      os.Getenv("DEMO_MODE") == "true",
		DemoOrgName:   os.Getenv("DEMO_ORG_NAME"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.DemoMode && cfg.DemoOrgName == "" {
		cfg.DemoOrgName = "Demo S.r.l."
	}

	return cfg
}
