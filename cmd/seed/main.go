// Command main runs the database seeder for ThalaNet.
package main

import (
	"flag"
	"log"

	"thalanet/internal/config"
	"thalanet/internal/database"
	"thalanet/internal/seed"
)

func main() {
	// Parse command line flags
	numRequests := flag.Int("requests", 40, "Number of emergency requests to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d requests, clean=%v\n", *numRequests, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	requests, err := s.SeedRequests(*numRequests)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d emergency requests", len(requests))
}
