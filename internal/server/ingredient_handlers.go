package server

import (
	"strings"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createIngredientRequest struct {
	Name string `json:"name"`
}

// GetIngredients handles GET /api/ingredients. Same contract as tags:
// owner-scoped, name descending, optional assigned_only filter.
//
//	@Summary		List the caller's ingredients
//	@Tags			ingredients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			assigned_only	query		int	false	"Only ingredients assigned to recipes"
//	@Success		200				{array}		models.Ingredient
//	@Failure		401				{object}	models.ErrorResponse
//	@Router			/ingredients [get]
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	assignedOnly := parseAssignedOnly(c.Query("assigned_only"))

	ingredients, err := s.ingredientRepo.List(c.Context(), currentUserID(c), assignedOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ingredients)
}

// CreateIngredient handles POST /api/ingredients
//
//	@Summary		Create an ingredient
//	@Tags			ingredients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createIngredientRequest	true	"Ingredient"
//	@Success		201		{object}	models.Ingredient
//	@Failure		400		{object}	models.ErrorResponse
//	@Router			/ingredients [post]
func (s *Server) CreateIngredient(c *fiber.Ctx) error {
	var req createIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	ingredient := models.Ingredient{Name: name, UserID: currentUserID(c)}
	if err := s.ingredientRepo.Create(c.Context(), &ingredient); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}
