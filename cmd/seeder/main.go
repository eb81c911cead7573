//cmd/seeder/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/unclebandit/vakinha-backend/internal/config"
	"github.com/unclebandit/vakinha-backend/internal/db"
	"github.com/unclebandit/vakinha-backend/internal/logger"
)

// Seed files run in order after the schema is applied. Each must be idempotent.
var seedFiles = []string{
	"seed/categories.sql",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel).With("component", "seeder")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, db.Options{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		log.Error("apply schema", "error", err)
		os.Exit(1)
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Error("read seed file", "file", file, "error", err)
			os.Exit(1)
		}

		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			log.Error("execute seed file", "file", file, "error", err)
			os.Exit(1)
		}
		log.Info("seeded", "file", file)
	}

	log.Info("database seeding completed")
}
