package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/config"
	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
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

// newTestServer wires a Server against an in-memory database. Metrics and
// Redis stay unset so tests don't touch process-global registries.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{
		JWTSecret:       "test-secret-key",
		Env:             "test",
		UploadDir:       t.TempDir(),
		MaxUploadSizeMB: 5,
	}

	s := &Server{
		config:         cfg,
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		tagRepo:        repository.NewTagRepository(db),
		ingredientRepo: repository.NewIngredientRepository(db),
		recipeRepo:     repository.NewRecipeRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo)
	s.recipeService = service.NewRecipeService(s.recipeRepo)
	s.imageService = service.NewImageService(cfg)
	return s, db
}

// authedApp returns a Fiber app with the resource routes registered behind a
// stub that authenticates every request as userID.
func authedApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})

	app.Get("/api/users/me", s.GetMyProfile)
	app.Put("/api/users/me", s.UpdateMyProfile)
	app.Patch("/api/users/me", s.PatchMyProfile)

	app.Get("/api/tags", s.GetTags)
	app.Post("/api/tags", s.CreateTag)
	app.Get("/api/ingredients", s.GetIngredients)
	app.Post("/api/ingredients", s.CreateIngredient)

	app.Get("/api/recipes", s.GetRecipes)
	app.Post("/api/recipes", s.CreateRecipe)
	app.Post("/api/recipes/:id/image", s.UploadRecipeImage)
	app.Get("/api/recipes/:id", s.GetRecipe)
	app.Put("/api/recipes/:id", s.UpdateRecipe)
	app.Patch("/api/recipes/:id", s.PatchRecipe)
	app.Delete("/api/recipes/:id", s.DeleteRecipe)

	return app
}

func createAccount(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed", Name: "Tester"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest), "body: %s", raw)
}
