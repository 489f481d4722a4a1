package config

import "errors"

// Validation errors returned by [ClientConfig.validate].
var (
	// ErrInvalidAdapterConfigs indicates a missing backend address or a
	// non-positive request timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive poll interval or a
	// negative sync refresh delay.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
