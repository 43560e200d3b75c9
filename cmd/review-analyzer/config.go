package main

import (
	"errors"
	"time"
)

type Config struct {
	InPath  string
	OutPath string
	AppName string
	Store   string
	Model   string
	APIKey  string
	LogMode string

	Pretty  bool
	Offline bool

	Timeout     time.Duration
	Concurrency int
	MaxInsights int
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	if !c.Offline && c.Model == "" {
		return errors.New("missing -model")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be >= 0")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	if c.MaxInsights < 0 {
		return errors.New("max-insights must be >= 0")
	}
	return nil
}
