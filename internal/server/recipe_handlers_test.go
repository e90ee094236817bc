package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "cook@example.com")
	tag := seedTag(t, db, user.ID, "Italian")
	app := authedApp(s, user.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/recipes", fiber.Map{
		"title":        "Pizza",
		"time_minutes": 30,
		"price":        5.00,
		"link":         "https://example.com/pizza",
		"tags":         []uint{tag.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body RecipeResponse
	decodeBody(t, resp, &body)
	assert.NotZero(t, body.ID)
	assert.Equal(t, "Pizza", body.Title)
	assert.Equal(t, 30, body.TimeMinutes)
	assert.InDelta(t, 5.00, body.Price, 0.001)
	assert.Equal(t, []uint{tag.ID}, body.Tags)
	assert.Empty(t, body.Ingredients)
}

func TestCreateRecipe_Validation(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "strict@example.com")
	app := authedApp(s, user.ID)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing title", fiber.Map{"time_minutes": 5, "price": 1.0}},
		{"missing time", fiber.Map{"title": "x", "price": 1.0}},
		{"negative price", fiber.Map{"title": "x", "time_minutes": 5, "price": -1.0}},
		{"unknown tag", fiber.Map{"title": "x", "time_minutes": 5, "price": 1.0, "tags": []uint{9999}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/recipes", tt.payload))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetRecipes_ListAndFilters(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "lister@example.com")
	app := authedApp(s, user.ID)

	tag := seedTag(t, db, user.ID, "Vegan")
	ingredient := &models.Ingredient{Name: "Tofu", UserID: user.ID}
	require.NoError(t, db.Create(ingredient).Error)

	tagged := seedRecipe(t, db, user.ID, "Salad")
	require.NoError(t, db.Model(tagged).Association("Tags").Append(tag))
	withIngredient := seedRecipe(t, db, user.ID, "Stir Fry")
	require.NoError(t, db.Model(withIngredient).Association("Ingredients").Append(ingredient))
	plain := seedRecipe(t, db, user.ID, "Plain")

	// Unfiltered: newest first.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/recipes", nil))
	require.NoError(t, err)
	var list []RecipeResponse
	decodeBody(t, resp, &list)
	require.Len(t, list, 3)
	assert.Equal(t, plain.ID, list[0].ID)

	// Tag filter.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes?tags=%d", tag.ID), nil))
	require.NoError(t, err)
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, tagged.ID, list[0].ID)

	// Tag and ingredient filters union.
	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/recipes?tags=%d&ingredients=%d", tag.ID, ingredient.ID), nil))
	require.NoError(t, err)
	decodeBody(t, resp, &list)
	assert.Len(t, list, 2)
}

func TestGetRecipes_BadFilterIsRejected(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "filter@example.com")
	app := authedApp(s, user.ID)

	for _, target := range []string{
		"/api/recipes?tags=abc",
		"/api/recipes?tags=1,abc",
		"/api/recipes?ingredients=1,,2",
	} {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, target, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "target %s", target)
	}
}

func TestGetRecipe_DetailHasNestedAssociations(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "detail@example.com")
	app := authedApp(s, user.ID)

	tag := seedTag(t, db, user.ID, "Thai")
	recipe := seedRecipe(t, db, user.ID, "Pad Thai")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(tag))

	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body RecipeDetailResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Tags, 1)
	assert.Equal(t, "Thai", body.Tags[0].Name)
	assert.NotNil(t, body.Ingredients)
}

func TestGetRecipe_ForeignRecipeIs404(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "mine@example.com")
	other := createAccount(t, db, "theirs@example.com")
	app := authedApp(s, user.ID)

	foreign := seedRecipe(t, db, other.ID, "Foreign")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", foreign.ID), nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateRecipe_PutClearsOmittedAssociations(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "replacer@example.com")
	app := authedApp(s, user.ID)

	tag := seedTag(t, db, user.ID, "Doomed")
	recipe := seedRecipe(t, db, user.ID, "Before")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(tag))

	resp, err := app.Test(jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/recipes/%d", recipe.ID), fiber.Map{
		"title":        "After",
		"time_minutes": 25,
		"price":        9.99,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body RecipeResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "After", body.Title)
	assert.Empty(t, body.Link)
	assert.Empty(t, body.Tags)
}

func TestPatchRecipe_LeavesOtherFieldsAlone(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "patcher@example.com")
	app := authedApp(s, user.ID)

	tag := seedTag(t, db, user.ID, "Sticky")
	recipe := seedRecipe(t, db, user.ID, "Original")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(tag))

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, fmt.Sprintf("/api/recipes/%d", recipe.ID), fiber.Map{
		"title": "Renamed",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body RecipeResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Renamed", body.Title)
	assert.Equal(t, recipe.TimeMinutes, body.TimeMinutes)

	stored, err := s.recipeService.Get(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tags, 1)
}

func TestDeleteRecipe(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "deleter@example.com")
	app := authedApp(s, user.ID)

	recipe := seedRecipe(t, db, user.ID, "Doomed")

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecipeRoutes_InvalidID(t *testing.T) {
	s, db := newTestServer(t)
	user := createAccount(t, db, "badid@example.com")
	app := authedApp(s, user.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/recipes/abc", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
