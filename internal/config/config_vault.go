package config

import (
	"fmt"
	"time"
)

// VaultAdapter holds network settings used by the vault's server adapter.
type VaultAdapter struct {
	// BaseURL is the HTTP endpoint address of the external auth/sync server.
	BaseURL string
	// RequestTimeout is the default timeout for outbound adapter requests.
	RequestTimeout time.Duration
}

// VaultDB contains local key-value store connection settings.
type VaultDB struct {
	// DSN is the SQLite connection string used by the local store.
	DSN string
}

// VaultStorage groups local storage backend settings.
type VaultStorage struct {
	// DB holds local key-value store settings.
	DB VaultDB
}

// VaultLock groups idle auto-lock timer settings.
type VaultLock struct {
	// AutoLockTimeout is how long the vault may sit idle before it locks
	// itself. Must be one of lockstate.AllowedTimeouts.
	AutoLockTimeout time.Duration
}

// VaultConfig is the top-level lockmarkd configuration assembled from
// [StructuredConfig].
type VaultConfig struct {
	// Adapter contains the external server address and timeout.
	Adapter VaultAdapter
	// Storage contains local store settings.
	Storage VaultStorage
	// Lock contains auto-lock timer settings.
	Lock VaultLock
	// Version is the running build version, for startup logging only.
	Version string
}

// GetVaultConfig builds and validates a lockmarkd-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the lockmarkd runtime, and validates the resulting
// [VaultConfig].
func GetVaultConfig() (*VaultConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	vaultCfg := &VaultConfig{
		Adapter: VaultAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: VaultStorage{
			DB: VaultDB{DSN: cfg.Storage.DB.DSN},
		},
		Lock: VaultLock{AutoLockTimeout: cfg.Lock.AutoLockTimeout},
		Version: cfg.App.Version,
	}

	return vaultCfg, vaultCfg.validate()
}
