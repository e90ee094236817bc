// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"recipebox/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every generated account.
const DefaultPassword = "password123"

var tagNames = []string{
	"Vegan", "Vegetarian", "Dessert", "Breakfast", "Lunch", "Dinner",
	"Quick", "Comfort Food", "Spicy", "Gluten Free", "Low Carb", "Barbecue",
	"Soup", "Salad", "Baking", "Holiday", "Italian", "Mexican", "Thai",
	"Indian", "Japanese", "Mediterranean",
}

var ingredientNames = []string{
	"Salt", "Pepper", "Olive Oil", "Butter", "Garlic", "Onion", "Tomato",
	"Basil", "Oregano", "Chicken", "Beef", "Salmon", "Rice", "Pasta",
	"Flour", "Sugar", "Eggs", "Milk", "Cheese", "Lemon", "Ginger",
	"Soy Sauce", "Chili", "Mushrooms", "Spinach", "Potatoes", "Carrots",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample account. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	user := &models.User{
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Name:     gofakeit.Name(),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateSuperuser persists an account with staff and superuser flags set.
func (f *Factory) CreateSuperuser(email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Email:       email,
		Password:    string(hashed),
		Name:        "Admin",
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create superuser: %w", err)
	}
	return user, nil
}

// CreateTag persists a tag for the given owner with a plausible name.
func (f *Factory) CreateTag(user *models.User, overrides ...func(*models.Tag)) (*models.Tag, error) {
	tag := &models.Tag{
		Name:   tagNames[f.r.Intn(len(tagNames))],
		UserID: user.ID,
	}
	for _, override := range overrides {
		override(tag)
	}
	if err := f.db.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// CreateIngredient persists an ingredient for the given owner.
func (f *Factory) CreateIngredient(user *models.User, overrides ...func(*models.Ingredient)) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		Name:   ingredientNames[f.r.Intn(len(ingredientNames))],
		UserID: user.ID,
	}
	for _, override := range overrides {
		override(ingredient)
	}
	if err := f.db.Create(ingredient).Error; err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

// CreateRecipe persists a recipe for the given owner, linked to a random
// subset of the owner's tags and ingredients.
func (f *Factory) CreateRecipe(user *models.User, tags []models.Tag, ingredients []models.Ingredient, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:       gofakeit.Dinner(),
		TimeMinutes: f.r.Intn(115) + 5,
		Price:       float64(f.r.Intn(4500)+100) / 100,
		Link:        gofakeit.URL(),
		UserID:      user.ID,
		Tags:        pickSubset(f.r, tags),
		Ingredients: pickSubset(f.r, ingredients),
	}

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

// pickSubset returns a random non-empty selection when the pool is non-empty.
func pickSubset[T any](r *rand.Rand, pool []T) []T {
	if len(pool) == 0 {
		return nil
	}
	n := r.Intn(len(pool)) + 1
	if n > 4 {
		n = 4
	}
	indices := r.Perm(len(pool))[:n]
	out := make([]T, 0, n)
	for _, i := range indices {
		out = append(out, pool[i])
	}
	return out
}
