package repository

import (
	"context"
	"errors"
	"strings"

	"recipebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilter carries the optional query-time filters for recipe lists.
// A recipe matches when it is linked to ANY of the listed tags OR ANY of the
// listed ingredients; empty slices impose no constraint.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines persistence operations for recipes and their
// tag/ingredient associations. Every read and write is scoped to the owning
// user; a foreign-owned ID behaves exactly like a nonexistent one.
type RecipeRepository interface {
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Save(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipe *models.Recipe) error
	ReplaceTags(ctx context.Context, recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *models.Recipe, ingredients []models.Ingredient) error
	TagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	IngredientsByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// List composes the ownership-scoped base query with the optional filters.
// Tag and ingredient membership is tested with IN-subqueries against the join
// tables, so a recipe matching several listed IDs still appears once. Results
// are ordered newest-first by ID.
func (r *recipeRepository) List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("recipes.user_id = ?", userID)

	var conds []string
	var args []interface{}
	if len(filter.TagIDs) > 0 {
		conds = append(conds, "recipes.id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)")
		args = append(args, filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		conds = append(conds, "recipes.id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)")
		args = append(args, filter.IngredientIDs)
	}
	if len(conds) > 0 {
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var recipes []models.Recipe
	if err := q.
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Ingredients").
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

// Create inserts the recipe row only; associations are written through
// ReplaceTags/ReplaceIngredients so create and update share one code path.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Save persists scalar recipe fields without touching associations.
func (r *recipeRepository) Save(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the recipe and its join-table references.
func (r *recipeRepository) Delete(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *models.Recipe, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return models.NewInternalError(err)
	}
	recipe.Tags = tags
	return nil
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *models.Recipe, ingredients []models.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return models.NewInternalError(err)
	}
	recipe.Ingredients = ingredients
	return nil
}

// TagsByIDs resolves tag rows regardless of owner. Write payloads reference
// tags by ID without an ownership check, matching the list-side contract
// where only existence is validated.
func (r *recipeRepository) TagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Find(&tags, ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *recipeRepository) IngredientsByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Find(&ingredients, ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}
