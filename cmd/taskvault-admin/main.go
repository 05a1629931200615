// Package main is the entry point for the TaskVault admin CLI.
// It provides user and API key administration against the configured
// database, bypassing the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/pkg/logging"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/repository/factory"
	"github.com/taskvault/taskvault/internal/service"
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
		fmt.Printf("TaskVault Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		runSubcommand(userCommand, os.Args[2:])

	case "apikey":
		runSubcommand(apikeyCommand, os.Args[2:])

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runSubcommand(fn func(ctx context.Context, env *adminEnv, args []string) error, args []string) {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx := context.Background()
	result, err := factory.New(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer result.Database.Close()

	env := &adminEnv{
		repos:       result.Repos,
		userService: service.NewUserService(result.Repos.User, logger),
		keyService:  service.NewAPIKeyService(result.Repos.User, result.Repos.APIKey, nil, cfg.APIKeys, logger),
	}

	if err := fn(ctx, env, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type adminEnv struct {
	repos       *repository.Repositories
	userService *service.UserService
	keyService  *service.APIKeyService
}

func userCommand(ctx context.Context, env *adminEnv, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskvault-admin user <create|get>")
	}

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("user create", flag.ExitOnError)
		username := fs.String("username", "", "username for the new account")
		password := fs.String("password", "", "password for the new account")
		fs.Parse(args[1:])

		user, err := env.userService.SignUp(ctx, *username, *password)
		if err != nil {
			return err
		}
		fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
		return nil

	case "get":
		fs := flag.NewFlagSet("user get", flag.ExitOnError)
		username := fs.String("username", "", "username to look up")
		fs.Parse(args[1:])

		user, err := env.userService.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		fmt.Printf("id:         %s\n", user.ID)
		fmt.Printf("username:   %s\n", user.Username)
		fmt.Printf("created_at: %s\n", user.CreatedAt)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func apikeyCommand(ctx context.Context, env *adminEnv, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskvault-admin apikey <list|activate|deactivate>")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("apikey list", flag.ExitOnError)
		username := fs.String("username", "", "owner username")
		fs.Parse(args[1:])

		user, err := env.userService.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}

		keys, err := env.repos.APIKey.ListByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY\tACTIVE\tCREATED\tEXPIRES")
		for _, key := range keys {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
				key.ID, key.Key, key.IsActive,
				key.CreatedAt.Format("2006-01-02 15:04:05"),
				key.ExpiresAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()

	case "activate", "deactivate":
		fs := flag.NewFlagSet("apikey "+args[0], flag.ExitOnError)
		id := fs.String("id", "", "key record ID")
		fs.Parse(args[1:])

		keyID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid key ID: %w", err)
		}

		key, err := env.keyService.SetActive(ctx, keyID, args[0] == "activate")
		if err != nil {
			return err
		}
		fmt.Printf("key %s is_active=%t\n", key.ID, key.IsActive)
		return nil

	default:
		return fmt.Errorf("unknown apikey subcommand: %s", args[0])
	}
}

func printUsage() {
	fmt.Println(`TaskVault Admin CLI

Usage:
  taskvault-admin <command> [arguments]

Commands:
  user        Manage users (create, get)
  apikey      Manage API keys (list, activate, deactivate)
  version     Print version information
  help        Show this help message

Examples:
  taskvault-admin user create --username alice --password secret-password
  taskvault-admin user get --username alice
  taskvault-admin apikey list --username alice
  taskvault-admin apikey deactivate --id <uuid>`)
}
