// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file (when present) is loaded exactly once per process, struct
// fields are populated from `env` tags, and each configuration type is parsed
// at most once with the result cached for subsequent calls.
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"HIREDESK_API_URL" envDefault:"http://localhost:8000"`
//	    Timeout time.Duration `env:"HIREDESK_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Sentinel errors (ErrParsingConfig, ErrLoadingEnv, ErrNilPointer) can be
// matched with errors.Is. Tests that mutate the environment between loads
// should call ResetCache.
package config
