// Package config provides configuration loading, merging, and validation
// for the account-keeper client.
//
// Configuration is assembled from several sources. Merging never overrides a
// field that an earlier source already set, so the effective priority is:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG or -c / -config)
//  4. Built-in defaults
//
// The main entry point is [GetClientConfig].
package config
