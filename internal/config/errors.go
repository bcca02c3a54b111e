package config

import "errors"

// Validation errors returned by [VaultConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings (for
	// example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidLockConfigs indicates an auto-lock timeout outside the
	// fixed set lockstate.AllowedTimeouts permits.
	ErrInvalidLockConfigs = errors.New("invalid lock configuration")
)
