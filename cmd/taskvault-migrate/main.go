// Package main is the entry point for the TaskVault schema migration tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/pkg/logging"
	"github.com/taskvault/taskvault/internal/repository/factory"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("TaskVault Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		if err := runUp(); err != nil {
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migrations applied")

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runUp connects to the configured database and applies all pending
// migrations. The factory already migrates on connect, so a successful
// connection means the schema is current.
func runUp() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)

	result, err := factory.New(context.Background(), cfg.Database, logger)
	if err != nil {
		return err
	}
	return result.Database.Close()
}

func printUsage() {
	fmt.Println(`TaskVault Migration Tool

Usage:
  taskvault-migrate <command>

Commands:
  up          Apply all pending migrations
  version     Print version information
  help        Show this help message

Configuration is read the same way as the server: a config file
(./config.yaml, ./configs/config.yaml or /etc/taskvault/config.yaml)
and TASKVAULT_* environment variables.

Examples:
  TASKVAULT_DATABASE_DRIVER=sqlite TASKVAULT_DATABASE_PATH=./taskvault.db taskvault-migrate up`)
}
