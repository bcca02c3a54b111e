package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lockmark/core/internal/config"
	"github.com/lockmark/core/internal/lockmarkd"
	"github.com/lockmark/core/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	var userID string
	var vaultID string
	flag.StringVar(&userID, "user-id", "", "account identifier to unlock")
	flag.StringVar(&vaultID, "vault-id", "", "vault identifier (generated on first run if omitted)")

	cfg, err := config.GetVaultConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("lockmarkd")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := lockmarkd.NewApp(ctx, cfg, userID, vaultID, log, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init lockmarkd app error: %v\n", err)
		os.Exit(1)
	}

	if err = app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lockmarkd run error: %v\n", err)
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
