package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/orgball2608/tweet-gallery/internal/dataset/datasetimpl"
	_ "github.com/orgball2608/tweet-gallery/internal/migrations"
	"github.com/orgball2608/tweet-gallery/internal/repositories/post"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/pressly/goose/v3"
)

// Go migrations are registered by the blank import above; goose only needs a
// directory for the version table bookkeeping.
const migrationsDir = "internal/migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>|import <data.json>]")
	}

	command := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if command == "import" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate import <data.json>")
		}
		if err := importDataset(cfg, os.Args[2]); err != nil {
			log.Fatalf("Failed to import dataset: %v", err)
		}
		return
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}
	dir := filepath.Join(wd, migrationsDir)

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := goose.Reset(db, dir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	case "create":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(db, dir, os.Args[2], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

// importDataset mirrors a data.json file into the posts table.
func importDataset(cfg *config.Config, path string) error {
	ctx := context.Background()
	l := logger.New(logger.Opts{Env: cfg.App.Env})

	posts, err := datasetimpl.NewFile(path, l).Fetch(ctx)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.GetPoolURL())
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	removed, err := post.NewPgx(pool, l).ReplaceAll(ctx, posts)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d posts, removed %d stale rows\n", len(posts), removed)
	return nil
}
