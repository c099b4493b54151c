// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, flash store) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the librarium web frontend.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// CatalogAPIURL is the base URL of the catalog REST API (scheme and host,
	// optionally a path prefix). Page controllers append /api/v1/... to it.
	CatalogAPIURL string `env:"CATALOG_API_URL,required"`

	// Key-Value store for one-shot alerts. Empty selects the in-memory store.
	RedisURL string `env:"REDIS_URL"`

	// FlashTTL bounds how long an undelivered alert survives.
	FlashTTL time.Duration `env:"FLASH_TTL" envDefault:"5m"`

	// DefaultLocale is used when Accept-Language matches no catalog.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"ru"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.CatalogAPIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: CATALOG_API_URL must be an absolute URL, got %q", c.CatalogAPIURL)
	}
	c.CatalogAPIURL = strings.TrimRight(c.CatalogAPIURL, "/")

	if c.FlashTTL <= 0 {
		return fmt.Errorf("config: FLASH_TTL must be positive, got %s", c.FlashTTL)
	}
	return nil
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
