package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

// RecipeService implements the write contracts for recipes: field validation,
// association resolution, and the full-vs-partial update semantics.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// RecipeInput carries a recipe write payload. Nil fields were absent from the
// request body, which matters for partial updates.
type RecipeInput struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

// List returns the caller's recipes with the optional tag/ingredient filters
// applied.
func (s *RecipeService) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]models.Recipe, error) {
	return s.recipeRepo.List(ctx, userID, filter)
}

// Get returns one of the caller's recipes with nested associations.
func (s *RecipeService) Get(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, userID, id)
}

// Create validates the payload and persists a new recipe owned by userID.
// Title, time and price are required; tag/ingredient lists are optional and
// default to the empty set.
func (s *RecipeService) Create(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error) {
	if err := validateRequiredRecipeFields(in); err != nil {
		return nil, err
	}

	tags, ingredients, err := s.resolveAssociations(ctx, in.TagIDs, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       *in.Title,
		TimeMinutes: *in.TimeMinutes,
		Price:       *in.Price,
		UserID:      userID,
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update modifies one of the caller's recipes. A full update (partial=false)
// replaces the whole writable field set: required fields must be present, an
// omitted link resets to empty, and omitted tag/ingredient lists clear the
// association. A partial update touches only the provided fields.
func (s *RecipeService) Update(ctx context.Context, userID, id uint, in RecipeInput, partial bool) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !partial {
		if err := validateRequiredRecipeFields(in); err != nil {
			return nil, err
		}
		if in.Link == nil {
			empty := ""
			in.Link = &empty
		}
		if in.TagIDs == nil {
			in.TagIDs = &[]uint{}
		}
		if in.IngredientIDs == nil {
			in.IngredientIDs = &[]uint{}
		}
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		recipe.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		if *in.TimeMinutes < 0 {
			return nil, models.NewValidationError("Time in minutes must not be negative")
		}
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, models.NewValidationError("Price must not be negative")
		}
		recipe.Price = *in.Price
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}

	var tags []models.Tag
	var ingredients []models.Ingredient
	if in.TagIDs != nil {
		tags, err = s.resolveTags(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
	}
	if in.IngredientIDs != nil {
		ingredients, err = s.resolveIngredients(ctx, *in.IngredientIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, err
		}
	}
	if in.IngredientIDs != nil {
		if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// Delete removes one of the caller's recipes and returns the deleted entity
// so the handler can clean up any stored image file.
func (s *RecipeService) Delete(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// SetImage stores a new image path on one of the caller's recipes and returns
// the recipe along with the previously stored path (empty when none).
func (s *RecipeService) SetImage(ctx context.Context, userID, id uint, path string) (*models.Recipe, string, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	previous := recipe.Image
	recipe.Image = path
	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, "", err
	}
	return recipe, previous, nil
}

func validateRequiredRecipeFields(in RecipeInput) error {
	if in.Title == nil || *in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if in.TimeMinutes == nil {
		return models.NewValidationError("Time in minutes is required")
	}
	if *in.TimeMinutes < 0 {
		return models.NewValidationError("Time in minutes must not be negative")
	}
	if in.Price == nil {
		return models.NewValidationError("Price is required")
	}
	if *in.Price < 0 {
		return models.NewValidationError("Price must not be negative")
	}
	return nil
}

func (s *RecipeService) resolveAssociations(ctx context.Context, tagIDs, ingredientIDs *[]uint) ([]models.Tag, []models.Ingredient, error) {
	var ids []uint
	if tagIDs != nil {
		ids = *tagIDs
	}
	tags, err := s.resolveTags(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	ids = nil
	if ingredientIDs != nil {
		ids = *ingredientIDs
	}
	ingredients, err := s.resolveIngredients(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return tags, ingredients, nil
}

// resolveTags fails when any referenced ID does not exist. Ownership of the
// referenced rows is not checked; listing stays owner-scoped either way.
func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	unique := uniqueIDs(ids)
	tags, err := s.recipeRepo.TagsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, models.NewValidationError("One or more tags do not exist")
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	unique := uniqueIDs(ids)
	ingredients, err := s.recipeRepo.IngredientsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(unique) {
		return nil, models.NewValidationError("One or more ingredients do not exist")
	}
	return ingredients, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
