package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hiredesk/hiredesk/pkg/config"
	"github.com/hiredesk/hiredesk/pkg/credstore"
)

// appConfig is layered from three sources, lowest precedence first:
// built-in defaults, the config file, environment variables.
type appConfig struct {
	APIBaseURL      string        `yaml:"api_url" env:"HIREDESK_API_URL"`
	Timeout         time.Duration `yaml:"timeout" env:"HIREDESK_API_TIMEOUT"`
	CredentialsFile string        `yaml:"credentials_file" env:"HIREDESK_CREDENTIALS_FILE"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string        `yaml:"log_format" env:"LOG_FORMAT"`
}

func defaultAppConfig() appConfig {
	cfg := appConfig{
		APIBaseURL: "http://localhost:8000",
		Timeout:    15 * time.Second,
		LogLevel:   "warn",
		LogFormat:  "text",
	}
	if path, err := credstore.DefaultPath(); err == nil {
		cfg.CredentialsFile = path
	}
	return cfg
}

// configFilePath returns the config file location: HIREDESK_CONFIG if set,
// otherwise ~/.hiredesk/config.yaml.
func configFilePath() string {
	if p := os.Getenv("HIREDESK_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hiredesk", "config.yaml")
}

func loadAppConfig() (appConfig, error) {
	cfg := defaultAppConfig()

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Optional file.
		case err != nil:
			return appConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return appConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	// Environment variables win over file values; unset variables leave the
	// layered values untouched.
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
