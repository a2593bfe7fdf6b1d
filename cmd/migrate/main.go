// Package main runs database schema migrations.
// Usage: migrate up
//        migrate down [steps]
//        migrate version
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"ledgerhouse/internal/infrastructure/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	sourceURL := "file://migrations"
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		sourceURL = "file://" + dir
	}

	m, err := migrate.New(sourceURL, pgxURL(cfg))
	if err != nil {
		fmt.Printf("failed to initialize migrator: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		runUp(m)
	case "down":
		runDown(m)
	case "version":
		showVersion(m)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func pgxURL(cfg *config.Config) string {
	// golang-migrate selects the driver from the URL scheme
	return "pgx5://" + cfg.Database.DSN()[len("postgres://"):]
}

func runUp(m *migrate.Migrate) {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("Already up to date")
		return
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied")
}

func runDown(m *migrate.Migrate) {
	steps := 1
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 {
			fmt.Printf("Invalid step count: %s\n", os.Args[2])
			os.Exit(1)
		}
		steps = n
	}

	err := m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("Nothing to roll back")
		return
	}
	if err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rolled back %d migration(s)\n", steps)
}

func showVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("No migrations applied")
		return
	}
	if err != nil {
		fmt.Printf("Failed to read version: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Version: %d (dirty: %v)\n", version, dirty)
}

func printUsage() {
	fmt.Println(`Ledgerhouse Migration Tool

Usage:
  migrate <command>

Commands:
  up               Apply all pending migrations
  down [steps]     Roll back the given number of migrations (default 1)
  version          Show the current schema version
  help             Show this help`)
}
