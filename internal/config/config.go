package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"smart-pantry/internal/shopping"
)

// Config holds the configuration for the application.
type Config struct {
	// CatalogPath points at a YAML recipe catalog. Empty means the built-in one.
	CatalogPath string
	// DataDir holds catalog and custom recipe files.
	DataDir     string
	DisplayMode shopping.DisplayMode
	LogLevel    string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	displayMode, err := shopping.ParseDisplayMode(os.Getenv("SHOPPING_DISPLAY_MODE"))
	if err != nil {
		return nil, fmt.Errorf("SHOPPING_DISPLAY_MODE: %w", err)
	}

	catalogPath := os.Getenv("SMART_PANTRY_CATALOG")
	if catalogPath != "" {
		if _, err := os.Stat(catalogPath); err != nil {
			return nil, fmt.Errorf("SMART_PANTRY_CATALOG %s is not readable: %w", catalogPath, err)
		}
	}

	dataDir := os.Getenv("SMART_PANTRY_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		CatalogPath: catalogPath,
		DataDir:     dataDir,
		DisplayMode: displayMode,
		LogLevel:    logLevel,
	}, nil
}

// LoadDotEnv loads variables from the given .env files into the environment
// without overriding values that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
