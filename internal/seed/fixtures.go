package seed

import (
	"fmt"
	"os"

	"recipebox/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixtures describes a deterministic data set loaded from a YAML file. Unlike
// the random factories, fixtures produce the same rows on every run, which
// makes them suitable for demos and reproducible bug reports.
type Fixtures struct {
	Users []FixtureUser `yaml:"users"`
}

// FixtureUser is one account with its owned rows.
type FixtureUser struct {
	Email       string          `yaml:"email"`
	Password    string          `yaml:"password"`
	Name        string          `yaml:"name"`
	Tags        []string        `yaml:"tags"`
	Ingredients []string        `yaml:"ingredients"`
	Recipes     []FixtureRecipe `yaml:"recipes"`
}

// FixtureRecipe references tags and ingredients by name within the same user.
type FixtureRecipe struct {
	Title       string   `yaml:"title"`
	TimeMinutes int      `yaml:"time_minutes"`
	Price       float64  `yaml:"price"`
	Link        string   `yaml:"link"`
	Tags        []string `yaml:"tags"`
	Ingredients []string `yaml:"ingredients"`
}

// LoadFixtures parses a YAML fixture file and inserts its contents.
func LoadFixtures(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("parse fixtures: %w", err)
	}

	for _, fu := range fixtures.Users {
		if err := insertFixtureUser(db, fu); err != nil {
			return fmt.Errorf("fixture user %s: %w", fu.Email, err)
		}
	}
	return nil
}

func insertFixtureUser(db *gorm.DB, fu FixtureUser) error {
	password := fu.Password
	if password == "" {
		password = DefaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{Email: fu.Email, Password: string(hashed), Name: fu.Name}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	tagsByName := make(map[string]models.Tag, len(fu.Tags))
	for _, name := range fu.Tags {
		tag := models.Tag{Name: name, UserID: user.ID}
		if err := db.Create(&tag).Error; err != nil {
			return err
		}
		tagsByName[name] = tag
	}

	ingredientsByName := make(map[string]models.Ingredient, len(fu.Ingredients))
	for _, name := range fu.Ingredients {
		ingredient := models.Ingredient{Name: name, UserID: user.ID}
		if err := db.Create(&ingredient).Error; err != nil {
			return err
		}
		ingredientsByName[name] = ingredient
	}

	for _, fr := range fu.Recipes {
		recipe := models.Recipe{
			Title:       fr.Title,
			TimeMinutes: fr.TimeMinutes,
			Price:       fr.Price,
			Link:        fr.Link,
			UserID:      user.ID,
		}
		for _, name := range fr.Tags {
			tag, ok := tagsByName[name]
			if !ok {
				return fmt.Errorf("recipe %q references unknown tag %q", fr.Title, name)
			}
			recipe.Tags = append(recipe.Tags, tag)
		}
		for _, name := range fr.Ingredients {
			ingredient, ok := ingredientsByName[name]
			if !ok {
				return fmt.Errorf("recipe %q references unknown ingredient %q", fr.Title, name)
			}
			recipe.Ingredients = append(recipe.Ingredients, ingredient)
		}
		if err := db.Create(&recipe).Error; err != nil {
			return err
		}
	}
	return nil
}
