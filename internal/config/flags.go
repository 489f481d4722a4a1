package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// parseFlags parses the client flags from args.
//
// Flags:
//
//	-a                  backend address (host:port or URL)
//	-request-timeout    request timeout (e.g. "15s")
//	-poll-interval      account list refresh period (e.g. "30s")
//	-sync-refresh-delay delay before re-reading accounts after a bulk sync
//	-log-file           client log file path
//	-log-level          log level (debug, info, warn, error)
//	-c / -config        JSON config file path
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		address          string
		requestTimeout   time.Duration
		pollInterval     time.Duration
		syncRefreshDelay time.Duration
		logFile          string
		logLevel         string
		jsonConfigPath   string
	)

	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.StringVar(&address, "a", "", "Backend address host:port or URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Account list refresh period (e.g., 30s)")
	fs.DurationVar(&syncRefreshDelay, "sync-refresh-delay", 0, "Delay before re-reading accounts after a bulk sync (e.g., 2s)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			PollInterval:     pollInterval,
			SyncRefreshDelay: syncRefreshDelay,
		},
		Log: Log{
			File:  logFile,
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
