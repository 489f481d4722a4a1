package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint of the account-manager backend.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background timing.
type ClientWorkers struct {
	// PollInterval is how often the account list is refreshed while
	// authenticated.
	PollInterval time.Duration
	// SyncRefreshDelay is the wait between a bulk sync acknowledgement and
	// the follow-up refresh.
	SyncRefreshDelay time.Duration
}

// ClientLog contains logging settings.
type ClientLog struct {
	File  string
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Workers ClientWorkers
	Log     ClientLog
}

// GetClientConfig builds and validates the client config from args (without
// the program name), the environment and the optional JSON file.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Workers: ClientWorkers{
			PollInterval:     cfg.Workers.PollInterval,
			SyncRefreshDelay: cfg.Workers.SyncRefreshDelay,
		},
		Log: ClientLog{
			File:  cfg.Log.File,
			Level: cfg.Log.Level,
		},
	}

	return clientCfg, clientCfg.validate()
}
