// Command migrate applies the service schema to the configured database.
// With -seed it also inserts an admin account and a starter catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Ninjabel/SetupCreator/internal/config"
	"github.com/Ninjabel/SetupCreator/internal/database"
	"github.com/Ninjabel/SetupCreator/internal/utils"
)

func main() {
	seed := flag.Bool("seed", false, "insert admin user and starter catalog after migrating")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migration completed")

	if !*seed {
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPass == "" {
		log.Fatal("seeding requires ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	hash, err := utils.HashPassword(adminPass, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if err := database.Seed(ctx, db, adminEmail, hash); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed completed")
}
