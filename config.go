package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port string

	// DataSource is a directory or an http(s) base URL holding the static
	// duals-<season>.json and schools.json documents.
	DataSource string
	Season     string

	DBDriver string
	DBDSN    string

	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	Debug           bool
}

// LoadConfig reads the .env file (if any) and returns a populated Config.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	driver := getEnv("DB_DRIVER", "sqlite")
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DataSource:      getEnv("DATA_SOURCE", "./public/data"),
		Season:          getEnv("SEASON", "2025"),
		DBDriver:        driver,
		DBDSN:           getEnv("DB_DSN", defaultDSN(driver)),
		FetchTimeout:    time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_MINUTES", 0)) * time.Minute,
		Debug:           getEnvBool("DEBUG", false),
	}
}

// DualsFile is the name of the dual results document for the configured season.
func (c *Config) DualsFile() string {
	return "duals-" + c.Season + ".json"
}

func defaultDSN(driver string) string {
	if driver == "postgres" {
		return "host=localhost port=5432 user=postgres dbname=matanalytics sslmode=disable"
	}
	// Railway volume mount keeps the sqlite file across deploys
	if mountPath := os.Getenv("RAILWAY_VOLUME_MOUNT_PATH"); mountPath != "" {
		return filepath.Join(mountPath, "matanalytics.db")
	}
	return ":memory:"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
