package server

import (
	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipeRequest struct {
	Title         *string  `json:"title"`
	TimeMinutes   *int     `json:"time_minutes"`
	Price         *float64 `json:"price"`
	Link          *string  `json:"link"`
	TagIDs        *[]uint  `json:"tags"`
	IngredientIDs *[]uint  `json:"ingredients"`
}

// RecipeResponse is the list/write representation: associations as ID lists.
type RecipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetailResponse is the single-recipe representation with nested
// tag and ingredient objects.
type RecipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Image       string              `json:"image"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

func (s *Server) toRecipeResponse(r *models.Recipe) RecipeResponse {
	tagIDs := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       s.imageService.URL(r.Image),
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func (s *Server) toRecipeDetailResponse(r *models.Recipe) RecipeDetailResponse {
	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return RecipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       s.imageService.URL(r.Image),
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeInput(req recipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	}
}

// GetRecipes handles GET /api/recipes. The tags and ingredients query
// parameters take comma-separated ID lists; a recipe matches when it is
// linked to any of the referenced rows.
//
//	@Summary		List the caller's recipes
//	@Tags			recipes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			tags		query		string	false	"Comma-separated tag IDs"
//	@Param			ingredients	query		string	false	"Comma-separated ingredient IDs"
//	@Success		200			{array}		RecipeResponse
//	@Failure		400			{object}	models.ErrorResponse
//	@Router			/recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	tagIDs, err := parseIDList(c.Query("tags"), "tags")
	if err != nil {
		return respondServiceError(c, err)
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"), "ingredients")
	if err != nil {
		return respondServiceError(c, err)
	}

	recipes, err := s.recipeService.List(c.Context(), currentUserID(c), repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, s.toRecipeResponse(&recipes[i]))
	}
	return c.JSON(out)
}

// CreateRecipe handles POST /api/recipes
//
//	@Summary		Create a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		recipeRequest	true	"Recipe"
//	@Success		201		{object}	RecipeResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Router			/recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.Create(c.Context(), currentUserID(c), toRecipeInput(req))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.toRecipeResponse(recipe))
}

// GetRecipe handles GET /api/recipes/:id
//
//	@Summary		Get a recipe with nested tags and ingredients
//	@Tags			recipes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Recipe ID"
//	@Success		200	{object}	RecipeDetailResponse
//	@Failure		404	{object}	models.ErrorResponse
//	@Router			/recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	recipe, err := s.recipeService.Get(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toRecipeDetailResponse(recipe))
}

// UpdateRecipe handles PUT /api/recipes/:id. Omitted fields are reset and
// omitted association lists cleared.
//
//	@Summary		Replace a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Recipe ID"
//	@Param			request	body		recipeRequest	true	"Recipe"
//	@Success		200		{object}	RecipeResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/recipes/{id} [put]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	return s.applyRecipeUpdate(c, false)
}

// PatchRecipe handles PATCH /api/recipes/:id. Only the supplied fields
// change.
//
//	@Summary		Partially update a recipe
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int				true	"Recipe ID"
//	@Param			request	body		recipeRequest	true	"Fields to change"
//	@Success		200		{object}	RecipeResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Router			/recipes/{id} [patch]
func (s *Server) PatchRecipe(c *fiber.Ctx) error {
	return s.applyRecipeUpdate(c, true)
}

func (s *Server) applyRecipeUpdate(c *fiber.Ctx, partial bool) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.Update(c.Context(), currentUserID(c), id, toRecipeInput(req), partial)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(s.toRecipeResponse(recipe))
}

// DeleteRecipe handles DELETE /api/recipes/:id
//
//	@Summary		Delete a recipe
//	@Tags			recipes
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Recipe ID"
//	@Success		204
//	@Failure		404	{object}	models.ErrorResponse
//	@Router			/recipes/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	recipe, err := s.recipeService.Delete(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if recipe.Image != "" {
		s.imageService.Remove(recipe.Image)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
