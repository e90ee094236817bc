// Command seed populates the database with development data.
package main

import (
	"flag"
	"log"
	"strings"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	tagsPerUser := flag.Int("tags", 5, "Tags per user")
	ingredientsPerUser := flag.Int("ingredients", 10, "Ingredients per user")
	recipesPerUser := flag.Int("recipes", 8, "Recipes per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	admin := flag.String("admin", "", "Create a superuser, format email:password")
	fixtures := flag.String("fixtures", "", "Load deterministic data from a YAML fixture file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *fixtures != "" {
		if *shouldClean {
			if err := seed.ClearAll(db); err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
		if err := seed.LoadFixtures(db, *fixtures); err != nil {
			log.Fatalf("Fixture loading failed: %v", err)
		}
		log.Printf("Fixtures loaded from %s", *fixtures)
	} else {
		err = seed.Seed(db, seed.Options{
			NumUsers:       *numUsers,
			TagsPerUser:    *tagsPerUser,
			IngredientsNum: *ingredientsPerUser,
			RecipesPerUser: *recipesPerUser,
			ShouldClean:    *shouldClean,
		})
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	if *admin != "" {
		email, password, ok := strings.Cut(*admin, ":")
		if !ok || email == "" || password == "" {
			log.Fatal("The -admin flag expects email:password")
		}
		factory := seed.NewFactory(db)
		user, err := factory.CreateSuperuser(email, password)
		if err != nil {
			log.Fatalf("Superuser creation failed: %v", err)
		}
		log.Printf("Superuser created: %s (ID %d)", user.Email, user.ID)
	}
}
