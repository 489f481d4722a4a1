// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It ties the terminal UI and the session, account and sync services into a
// single process lifecycle and stops background work on exit.
package client
