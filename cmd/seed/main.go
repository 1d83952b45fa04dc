// Command main runs the database seeder for Foodgram.
package main

import (
	"context"
	"flag"
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	recipesPerUser := flag.Int("recipes", 5, "Number of recipes per user")
	ingredientsFile := flag.String("ingredients", "data/ingredients.yml", "Path to the ingredient fixture file")
	adminEmail := flag.String("admin", "admin@foodgram.local", "Email for the admin account (empty to skip)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d recipes each, clean=%v\n", *numUsers, *recipesPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	if err := s.Run(context.Background(), seed.Options{
		Users:           *numUsers,
		RecipesPerUser:  *recipesPerUser,
		IngredientsFile: *ingredientsFile,
		AdminEmail:      *adminEmail,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
