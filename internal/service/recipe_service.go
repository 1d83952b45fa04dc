package service

import (
	"context"

	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

const (
	maxRecipeNameLen = 200
	maxRecipeTextLen = 50000
)

type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	followRepo     repository.FollowRepository
	images         *ImageService
	isAdmin        func(ctx context.Context, userID uint) (bool, error)
}

// IngredientAmountInput is one (ingredient, amount) pair of a write payload.
type IngredientAmountInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

type CreateRecipeInput struct {
	AuthorID    uint
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmountInput
}

type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientAmountInput
}

type ListRecipesInput struct {
	CurrentUserID uint
	AuthorID      uint
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
	Limit         int
	Offset        int
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	followRepo repository.FollowRepository,
	images *ImageService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		followRepo:     followRepo,
		images:         images,
		isAdmin:        isAdmin,
	}
}

// validatePayload checks the shared create/update constraints and returns
// the resolved tags and the validated ingredient pairs.
func (s *RecipeService) validatePayload(ctx context.Context, name, text string, cookingTime int, tagIDs []uint, ingredients []IngredientAmountInput) ([]models.Tag, []IngredientAmountInput, error) {
	if name == "" {
		return nil, nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxRecipeNameLen {
		return nil, nil, models.NewValidationError("Name too long (max 200 characters)")
	}
	if text == "" {
		return nil, nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxRecipeTextLen {
		return nil, nil, models.NewValidationError("Text too long (max 50000 characters)")
	}
	if cookingTime < 1 {
		return nil, nil, models.NewValidationError("Cooking time must be at least 1 minute")
	}

	if len(tagIDs) == 0 {
		return nil, nil, models.NewValidationError("At least one tag is required")
	}
	seenTags := make(map[uint]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, models.NewValidationError("Duplicate tags are not allowed")
		}
		seenTags[id] = true
	}
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, models.NewValidationError("One or more tags do not exist")
	}

	if len(ingredients) == 0 {
		return nil, nil, models.NewValidationError("At least one ingredient is required")
	}
	seenIngredients := make(map[uint]bool, len(ingredients))
	ingredientIDs := make([]uint, 0, len(ingredients))
	for _, in := range ingredients {
		if seenIngredients[in.ID] {
			return nil, nil, models.NewValidationError("Duplicate ingredients are not allowed")
		}
		seenIngredients[in.ID] = true
		if in.Amount < 1 {
			return nil, nil, models.NewValidationError("Ingredient amount must be at least 1")
		}
		ingredientIDs = append(ingredientIDs, in.ID)
	}
	existing, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) != len(ingredientIDs) {
		return nil, nil, models.NewValidationError("One or more ingredients do not exist")
	}

	return tags, ingredients, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.RecipeView, error) {
	tags, ingredients, err := s.validatePayload(ctx, in.Name, in.Text, in.CookingTime, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, models.NewValidationError("Image is required")
	}

	imagePath, err := s.images.SaveDataURI(in.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    in.AuthorID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Tags:        tags,
		Ingredients: ingredientRows(0, ingredients),
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		s.images.Remove(imagePath)
		return nil, err
	}

	observability.RecipesCreatedTotal.Inc()
	return s.loadView(ctx, recipe.ID, in.AuthorID)
}

// GetRecipe returns the full read view. Anonymous reads go through the
// cache; authenticated ones carry user-relative flags and skip it.
func (s *RecipeService) GetRecipe(ctx context.Context, id, currentUserID uint) (*models.RecipeView, error) {
	if currentUserID == 0 {
		var view models.RecipeView
		err := cache.Aside(ctx, cache.RecipeKey(id), &view, cache.RecipeTTL, func() error {
			loaded, fetchErr := s.loadView(ctx, id, 0)
			if fetchErr != nil {
				return fetchErr
			}
			view = *loaded
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &view, nil
	}
	return s.loadView(ctx, id, currentUserID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]models.RecipeView, int64, error) {
	filter := repository.RecipeFilter{
		AuthorID:      in.AuthorID,
		TagSlugs:      in.TagSlugs,
		FavoritedOnly: in.FavoritedOnly,
		InCartOnly:    in.InCartOnly,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	recipes, total, err := s.recipeRepo.List(ctx, in.CurrentUserID, filter)
	if err != nil {
		return nil, 0, err
	}

	// One subscription lookup per distinct author, not per recipe.
	subscribed := make(map[uint]bool)
	views := make([]models.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		authorSubscribed := false
		if in.CurrentUserID != 0 && in.CurrentUserID != r.AuthorID {
			cached, ok := subscribed[r.AuthorID]
			if !ok {
				cached, err = s.followRepo.Exists(ctx, in.CurrentUserID, r.AuthorID)
				if err != nil {
					return nil, 0, err
				}
				subscribed[r.AuthorID] = cached
			}
			authorSubscribed = cached
		}
		views = append(views, models.ToRecipeView(r, authorSubscribed))
	}
	return views, total, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.RecipeView, error) {
	existing, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrAdmin(ctx, existing.AuthorID, in.UserID); err != nil {
		return nil, err
	}

	tags, ingredients, err := s.validatePayload(ctx, in.Name, in.Text, in.CookingTime, in.TagIDs, in.Ingredients)
	if err != nil {
		return nil, err
	}

	imagePath := existing.Image
	var newImage string
	if in.Image != "" && IsDataURI(in.Image) {
		newImage, err = s.images.SaveDataURI(in.Image)
		if err != nil {
			return nil, err
		}
		imagePath = newImage
	}

	recipe := &models.Recipe{
		ID:          existing.ID,
		AuthorID:    existing.AuthorID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		Tags:        tags,
		Ingredients: ingredientRows(existing.ID, ingredients),
	}
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		if newImage != "" {
			s.images.Remove(newImage)
		}
		return nil, err
	}
	if newImage != "" && existing.Image != "" {
		s.images.Remove(existing.Image)
	}

	cache.InvalidateRecipe(ctx, in.RecipeID)
	return s.loadView(ctx, in.RecipeID, in.UserID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if err := s.requireOwnerOrAdmin(ctx, existing.AuthorID, userID); err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.images.Remove(existing.Image)
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

// FavoriteRecipe adds the recipe to the user's favorites. Favoriting your
// own recipe is allowed; favoriting twice is a conflict.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uint) (*models.RecipeMiniView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, 0)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Favorite(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	view := models.ToRecipeMiniView(recipe)
	return &view, nil
}

func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}
	return s.recipeRepo.Unfavorite(ctx, userID, recipeID)
}

func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.RecipeMiniView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, 0)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.AddToCart(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	view := models.ToRecipeMiniView(recipe)
	return &view, nil
}

func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}
	return s.recipeRepo.RemoveFromCart(ctx, userID, recipeID)
}

func (s *RecipeService) loadView(ctx context.Context, recipeID, currentUserID uint) (*models.RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, currentUserID)
	if err != nil {
		return nil, err
	}
	authorSubscribed := false
	if currentUserID != 0 && currentUserID != recipe.AuthorID {
		authorSubscribed, err = s.followRepo.Exists(ctx, currentUserID, recipe.AuthorID)
		if err != nil {
			return nil, err
		}
	}
	view := models.ToRecipeView(recipe, authorSubscribed)
	return &view, nil
}

func (s *RecipeService) requireOwnerOrAdmin(ctx context.Context, authorID, userID uint) error {
	if authorID == userID {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if admin {
			return nil
		}
	}
	return models.NewForbiddenError("You can only modify your own recipes")
}

func ingredientRows(recipeID uint, pairs []IngredientAmountInput) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: p.ID,
			Amount:       p.Amount,
		})
	}
	return rows
}
