// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// lockmarkd binary. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the running build
	// version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local key-value backend that
	// persists Keystore/PinStore/LockState/session data between runs.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds configuration for reaching the external auth/sync
	// server that owns accounts, KDF params, the held WMK, and the
	// manifest blob.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Lock holds configuration for the idle auto-lock timer.
	Lock Lock `envPrefix:"LOCK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running binary
	// (e.g. "1.2.3"). Surfaced in startup logs only.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local persisted-state backend
// described by spec §6.5.
type Storage struct {
	// DB holds the local key-value store connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local key-value backend.
type DB struct {
	// DSN is the SQLite data source name used to open the local
	// keystore/pin_store/lock_state/session store
	// (e.g. "/home/user/.lockmark/state.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds network settings for the server adapter described by
// spec §6.
type Adapter struct {
	// BaseURL is the base HTTP address of the external server exposing
	// POST /user/wmk, PUT/GET /vault/manifest, and the login endpoint.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// adapter request before it is cancelled (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Lock holds configuration for the idle auto-lock job of spec §4.6.
type Lock struct {
	// AutoLockTimeout is how long the vault may sit idle before the
	// AutoLocker calls Lock(). Must be one of lockstate.AllowedTimeouts.
	// Env: LOCK_AUTO_LOCK_TIMEOUT
	AutoLockTimeout time.Duration `env:"AUTO_LOCK_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority
// order (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
