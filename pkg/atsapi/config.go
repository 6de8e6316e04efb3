package atsapi

import "time"

// Config holds client settings loadable from the environment.
type Config struct {
	BaseURL string        `env:"HIREDESK_API_URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"HIREDESK_API_TIMEOUT" envDefault:"15s"`
}
