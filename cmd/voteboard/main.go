package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/auth"
	"github.com/voteboard-dev/voteboard/internal/reconciler"
	"github.com/voteboard-dev/voteboard/internal/router"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err = db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err = auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	// Drift repair sweep is opt-in; the vote path maintains counts inline.
	if intervalStr := os.Getenv("RECONCILE_INTERVAL"); intervalStr != "" {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			log.Fatalf("Invalid RECONCILE_INTERVAL: %v", err)
		}

		rec := reconciler.New(interval)
		rec.Start()
		defer rec.Stop()
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
