// Command migrate applies the database schema. It waits for the database to
// accept connections, so it is safe to run as a startup step in compose
// environments.
package main

import (
	"flag"
	"log"
	"time"

	"recipebox/internal/config"
	"recipebox/internal/database"
)

func main() {
	attempts := flag.Int("attempts", 10, "Connection attempts before giving up")
	delay := flag.Duration("delay", 2*time.Second, "Delay between connection attempts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.ConnectWithRetry(cfg, *attempts, *delay)
	if err != nil {
		log.Fatalf("Database unavailable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
