package seed

import (
	"os"
	"path/filepath"
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{}))
	return db
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))
	assert.False(t, user.IsSuperuser)
}

func TestFactoryCreateSuperuser(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateSuperuser("admin@example.com", "admin-password")
	require.NoError(t, err)

	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("admin-password")))
}

func TestSeedPopulatesCounts(t *testing.T) {
	db := setupSeedDB(t)

	err := Seed(db, Options{
		NumUsers:       2,
		TagsPerUser:    3,
		IngredientsNum: 4,
		RecipesPerUser: 2,
	})
	require.NoError(t, err)

	var users, tags, ingredients, recipes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)

	assert.EqualValues(t, 2, users)
	assert.EqualValues(t, 6, tags)
	assert.EqualValues(t, 8, ingredients)
	assert.EqualValues(t, 4, recipes)

	// Every recipe belongs to its creating user and links only existing rows.
	var all []models.Recipe
	require.NoError(t, db.Preload("Tags").Preload("Ingredients").Find(&all).Error)
	for _, recipe := range all {
		assert.NotZero(t, recipe.UserID)
		assert.NotEmpty(t, recipe.Title)
	}
}

func TestClearAll(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 1, TagsPerUser: 2, IngredientsNum: 2, RecipesPerUser: 1}))
	require.NoError(t, ClearAll(db))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestLoadFixtures(t *testing.T) {
	db := setupSeedDB(t)

	fixture := `users:
  - email: demo@example.com
    name: Demo Cook
    tags: [Vegan, Dessert]
    ingredients: [Sugar, Flour]
    recipes:
      - title: Vegan Cake
        time_minutes: 45
        price: 12.50
        link: https://example.com/cake
        tags: [Vegan, Dessert]
        ingredients: [Sugar, Flour]
`
	path := filepath.Join(t.TempDir(), "fixtures.yml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	require.NoError(t, LoadFixtures(db, path))

	var user models.User
	require.NoError(t, db.Where("email = ?", "demo@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))

	var recipe models.Recipe
	require.NoError(t, db.Preload("Tags").Preload("Ingredients").Where("title = ?", "Vegan Cake").First(&recipe).Error)
	assert.Equal(t, user.ID, recipe.UserID)
	assert.Len(t, recipe.Tags, 2)
	assert.Len(t, recipe.Ingredients, 2)
	assert.InDelta(t, 12.50, recipe.Price, 0.001)
}

func TestLoadFixtures_UnknownReferenceFails(t *testing.T) {
	db := setupSeedDB(t)

	fixture := `users:
  - email: broken@example.com
    recipes:
      - title: Bad
        time_minutes: 5
        price: 1.00
        tags: [Missing]
`
	path := filepath.Join(t.TempDir(), "fixtures.yml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	err := LoadFixtures(db, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tag")
}
