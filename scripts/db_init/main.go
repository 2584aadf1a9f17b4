package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/techcare/core/db"
	"github.com/techcare/core/internal/config"
	"github.com/techcare/core/internal/db"
	"github.com/techcare/core/internal/repository/sqlite"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// bring the schema to the current version and seed demo data
	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles, cfg.BcryptCost); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	// prepare the separate session namespace
	sessionDB, err := db.New(ctx, cfg.SessionPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Session DB init error: %v\n", err)
		os.Exit(1)
	}
	defer sessionDB.Close()

	if _, err := sqlite.NewKV(ctx, sessionDB); err != nil {
		fmt.Fprintf(os.Stderr, "Session store init error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
