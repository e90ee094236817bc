package seed

import (
	"fmt"
	"log"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	TagsPerUser    int
	IngredientsNum int
	RecipesPerUser int
	ShouldClean    bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users with %d recipes each...", opts.NumUsers, opts.RecipesPerUser)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	factory := NewFactory(db)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}

		tags := make([]models.Tag, 0, opts.TagsPerUser)
		for j := 0; j < opts.TagsPerUser; j++ {
			tag, err := factory.CreateTag(user)
			if err != nil {
				return err
			}
			tags = append(tags, *tag)
		}

		ingredients := make([]models.Ingredient, 0, opts.IngredientsNum)
		for j := 0; j < opts.IngredientsNum; j++ {
			ingredient, err := factory.CreateIngredient(user)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, *ingredient)
		}

		for j := 0; j < opts.RecipesPerUser; j++ {
			if _, err := factory.CreateRecipe(user, tags, ingredients); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeding complete. All accounts use the password %q", DefaultPassword)
	return nil
}

// ClearAll removes all seeded rows. Join tables are emptied through the
// recipe delete cascade.
func ClearAll(db *gorm.DB) error {
	tables := []string{"recipe_tags", "recipe_ingredients", "recipes", "tags", "ingredients", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
