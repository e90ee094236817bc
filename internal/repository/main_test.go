package repository

import (
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed", Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, userID uint, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, UserID: userID}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, userID uint, name string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, UserID: userID}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTestRecipe(t *testing.T, db *gorm.DB, userID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{Title: title, TimeMinutes: 10, Price: 5.50, UserID: userID}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
