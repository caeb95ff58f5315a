package main

import (
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hirelink/points/internal/config"
	"github.com/hirelink/points/migrations"
)

// Applies goose migrations against the configured database.
// Usage: migrate [-down]
func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	if *down {
		if err := goose.Down(db, "."); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		return
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatalf("Migration up failed: %v", err)
	}
}
