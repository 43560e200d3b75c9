package main

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server configuration, loaded from REVIEWRADAR_* environment
// variables.
type Config struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	Mode           string        `envconfig:"MODE" default:"dev"`
	OpenAIAPIKey   string        `envconfig:"OPENAI_API_KEY"`
	Model          string        `envconfig:"MODEL" default:"gpt-5-mini"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"2m"`
	Concurrency    int           `envconfig:"CONCURRENCY" default:"0"`
	MaxInsights    int           `envconfig:"MAX_INSIGHTS" default:"0"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("REVIEWRADAR", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("missing REVIEWRADAR_ADDR")
	}
	if c.Model == "" {
		return errors.New("missing REVIEWRADAR_MODEL")
	}
	if c.RequestTimeout < 0 {
		return errors.New("REVIEWRADAR_REQUEST_TIMEOUT must be >= 0")
	}
	if c.Concurrency < 0 {
		return errors.New("REVIEWRADAR_CONCURRENCY must be >= 0")
	}
	if c.MaxInsights < 0 {
		return errors.New("REVIEWRADAR_MAX_INSIGHTS must be >= 0")
	}
	return nil
}
