package repository

import (
	"context"
	"fmt"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// CollectionConfig parameterizes an owned collection of named rows: the
// backing table, the recipe join table used for the assigned-only filter, and
// the ordering applied to every list.
type CollectionConfig struct {
	Table      string
	JoinTable  string
	JoinColumn string
	OrderBy    string
}

// CollectionRepository is the shared persistence layer behind tags and
// ingredients. Both entities are an (id, name, owner) triple with identical
// list/create semantics, so a single implementation takes the entity kind as
// a type parameter and the table wiring as configuration.
type CollectionRepository[T any] struct {
	db  *gorm.DB
	cfg CollectionConfig
}

// NewTagRepository returns the tag collection, ordered by name descending.
func NewTagRepository(db *gorm.DB) *CollectionRepository[models.Tag] {
	return &CollectionRepository[models.Tag]{
		db: db,
		cfg: CollectionConfig{
			Table:      "tags",
			JoinTable:  "recipe_tags",
			JoinColumn: "tag_id",
			OrderBy:    "tags.name DESC",
		},
	}
}

// NewIngredientRepository returns the ingredient collection, ordered by name descending.
func NewIngredientRepository(db *gorm.DB) *CollectionRepository[models.Ingredient] {
	return &CollectionRepository[models.Ingredient]{
		db: db,
		cfg: CollectionConfig{
			Table:      "ingredients",
			JoinTable:  "recipe_ingredients",
			JoinColumn: "ingredient_id",
			OrderBy:    "ingredients.name DESC",
		},
	}
}

// List returns the caller's rows. With assignedOnly set, only rows linked to
// at least one recipe are returned; the join can match a row once per linked
// recipe, so the select is DISTINCT to keep each row in the result exactly
// once.
func (r *CollectionRepository[T]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	q := r.db.WithContext(ctx).
		Model(new(T)).
		Where(r.cfg.Table+".user_id = ?", userID)

	if assignedOnly {
		q = q.
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", r.cfg.JoinTable, r.cfg.JoinTable, r.cfg.JoinColumn, r.cfg.Table)).
			Distinct(r.cfg.Table + ".*")
	}

	var items []T
	if err := q.Order(r.cfg.OrderBy).Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// Create persists a new row. The owner must already be set by the caller.
func (r *CollectionRepository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
