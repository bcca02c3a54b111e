// Package config provides configuration loading, merging, and validation
// facilities for the lockmarkd binary.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetVaultConfig], which returns the typed view of
// configuration that cmd/lockmarkd wires into the adapter, store, and
// lockstate packages.
package config
