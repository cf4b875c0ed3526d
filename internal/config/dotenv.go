package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error. Variables already set in the
// environment are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// MustLoadDotEnv is like LoadDotEnv but fails when the file does not exist.
func MustLoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	return godotenv.Load(path)
}

// LoadConfig loads configuration from a .env file and environment variables.
// The .env file is loaded first, then environment variables override it.
// With an empty envPath a missing ./.env is skipped; an explicit envPath
// must exist.
func LoadConfig(envPath string) (AppConfig, error) {
	load := MustLoadDotEnv
	if envPath == "" {
		load = LoadDotEnv
	}
	if err := load(envPath); err != nil {
		return AppConfig{}, err
	}
	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	cfg, err := envCfg.ToAppConfig()
	if err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
