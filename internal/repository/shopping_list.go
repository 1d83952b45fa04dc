package repository

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/observability"

	"gorm.io/gorm"
)

// ShoppingListItem is one aggregated line of a user's shopping list:
// identical ingredients across cart recipes are merged and their amounts
// summed.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

// ShoppingListRepository aggregates the ingredients of a user's cart
type ShoppingListRepository interface {
	Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error)
}

type shoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// Aggregate joins the user's cart entries through recipe ingredients and
// groups by (name, measurement unit), so "Flour, 200 g" and "Flour, 300 g"
// from two recipes come back as a single 500 g line.
func (r *shoppingListRepository) Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	defer observability.TrackQuery("select", "shopping_carts")()

	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
