// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file and defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the address and timeout of the account-manager backend.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the timing of background activity (polling, the
	// deferred refresh after a bulk sync).
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds client log destination and level.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds settings of the outbound HTTP transport.
type Adapter struct {
	// HTTPAddress is the backend base address, with or without scheme
	// (e.g. "localhost:5000" or "https://accounts.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request round trip.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds timing for background activity.
type Workers struct {
	// PollInterval is the period of the account list refresh while the
	// session is authenticated.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// SyncRefreshDelay is how long to wait after a bulk sync was acknowledged
	// before re-reading the account list.
	// Env: WORKERS_SYNC_REFRESH_DELAY
	SyncRefreshDelay time.Duration `env:"SYNC_REFRESH_DELAY"`
}

// Log holds logging settings.
type Log struct {
	// File is the path of the client log file.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name (debug, info, warn, error).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Default values applied to every field no other source has set.
const (
	DefaultHTTPAddress      = "http://localhost:5000"
	DefaultRequestTimeout   = 15 * time.Second
	DefaultPollInterval     = 30 * time.Second
	DefaultSyncRefreshDelay = 2 * time.Second
	DefaultLogLevel         = "info"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			PollInterval:     DefaultPollInterval,
			SyncRefreshDelay: DefaultSyncRefreshDelay,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources.
// args are the command-line arguments without the program name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
