package repository

import (
	"context"
	"errors"

	"foodgram/internal/models"
	"foodgram/internal/observability"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
// FavoritedOnly and InCartOnly are relative to the requesting user and
// are ignored for anonymous requests.
type RecipeFilter struct {
	AuthorID      uint
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
	Limit         int
	Offset        int
}

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id, userID uint) (*models.Recipe, error)
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]*models.Recipe, int64, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error)

	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) error
	IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error)
	AddToCart(ctx context.Context, userID, recipeID uint) error
	RemoveFromCart(ctx context.Context, userID, recipeID uint) error
	IsInCart(ctx context.Context, userID, recipeID uint) (bool, error)
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyRecipeFlags computes is_favorited and is_in_shopping_cart at query
// time via EXISTS subselects against the requesting user. Anonymous
// requests skip the subselects and get the zero-value flags.
func applyRecipeFlags(q *gorm.DB, userID uint) *gorm.DB {
	if userID == 0 {
		return q
	}
	return q.Select(
		"recipes.*, "+
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
			"EXISTS(SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?) AS is_in_shopping_cart",
		userID, userID,
	)
}

func recipePreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
}

// Create persists the recipe together with its tag set and ingredient rows.
// GORM runs the associated inserts in a single transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	defer observability.TrackQuery("insert", "recipes")()
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("you already have a recipe with this name")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id, userID uint) (*models.Recipe, error) {
	defer observability.TrackQuery("select", "recipes")()
	var recipe models.Recipe
	q := applyRecipeFlags(r.db.WithContext(ctx).Model(&models.Recipe{}), userID)
	if err := recipePreloads(q).First(&recipe, "recipes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, userID uint, filter RecipeFilter) ([]*models.Recipe, int64, error) {
	defer observability.TrackQuery("select", "recipes")()

	base := r.db.WithContext(ctx).Model(&models.Recipe{})
	if filter.AuthorID != 0 {
		base = base.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		// Subselect instead of a join so multi-tag recipes are not duplicated.
		base = base.Where(
			"recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)",
			filter.TagSlugs,
		)
	}
	if filter.FavoritedOnly && userID != 0 {
		base = base.Where(
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)",
			userID,
		)
	}
	if filter.InCartOnly && userID != 0 {
		base = base.Where(
			"EXISTS(SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?)",
			userID,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var recipes []*models.Recipe
	q := recipePreloads(applyRecipeFlags(base, userID)).
		Order("recipes.created_at DESC, recipes.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return recipes, total, nil
}

// Update rewrites the recipe's scalar fields and replaces its tag and
// ingredient sets wholesale, all inside one transaction.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	defer observability.TrackQuery("update", "recipes")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("you already have a recipe with this name")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the recipe and everything hanging off it: ingredient rows,
// tag links, favorites and cart entries.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "recipes")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) Favorite(ctx context.Context, userID, recipeID uint) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("recipe is already in favorites")
		}
		return models.NewInternalError(err)
	}
	observability.MembershipMutationsTotal.WithLabelValues("favorite", "add").Inc()
	return nil
}

// Unfavorite is idempotent: removing an absent favorite is not an error.
func (r *recipeRepository) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		observability.MembershipMutationsTotal.WithLabelValues("favorite", "remove").Inc()
	}
	return nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uint) error {
	entry := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if isDuplicate(err) {
			return models.NewConflictError("recipe is already in the shopping cart")
		}
		return models.NewInternalError(err)
	}
	observability.MembershipMutationsTotal.WithLabelValues("cart", "add").Inc()
	return nil
}

// RemoveFromCart is idempotent, like Unfavorite.
func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		observability.MembershipMutationsTotal.WithLabelValues("cart", "remove").Inc()
	}
	return nil
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
