package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-adapter-url the external server's base URL
//	-d local key-value store DSN
//	-request-timeout adapter request timeout (e.g., "15s")
//	-auto-lock-timeout idle auto-lock duration (e.g., "5m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var adapterURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var autoLockTimeout time.Duration
	var version string

	flag.StringVar(&adapterURL, "adapter-url", "", "External server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local key-value store DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Adapter request timeout (e.g., 15s)")
	flag.DurationVar(&autoLockTimeout, "auto-lock-timeout", 0, "Idle auto-lock duration (e.g., 5m)")
	flag.StringVar(&version, "version-string", "", "Build version string")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Version: version,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			BaseURL:        adapterURL,
			RequestTimeout: requestTimeout,
		},
		Lock:         Lock{AutoLockTimeout: autoLockTimeout},
		JSONFilePath: jsonConfigPath,
	}
}
