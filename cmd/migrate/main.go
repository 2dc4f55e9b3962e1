package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Schema CLI for the embedded store. The server migrates on boot as well;
// this tool exists so operators can prepare or inspect the database file
// without starting the HTTP listener.
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log := logger.New(config.LogConfig{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date", zap.String("path", cfg.Database.Path))

	case "check":
		if err := db.Ping(); err != nil {
			log.Fatal("Database unreachable", zap.Error(err))
		}
		log.Info("Database reachable", zap.String("path", cfg.Database.Path))

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`POS Database Schema Tool

Usage:
  migrate [flags] <command>

Commands:
  up      Create or update the schema to match the current models
  check   Verify the database file is reachable

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)

Configuration comes from config.toml or POS_* environment variables,
e.g. POS_DATABASE_PATH=/var/lib/pos/pos.db migrate up`)
}
