package service

import (
	"context"
	"errors"
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn         func(context.Context, *models.Recipe) error
	getByIDFn        func(context.Context, uint, uint) (*models.Recipe, error)
	listFn           func(context.Context, uint, repository.RecipeFilter) ([]*models.Recipe, int64, error)
	updateFn         func(context.Context, *models.Recipe) error
	deleteFn         func(context.Context, uint) error
	countByAuthorFn  func(context.Context, uint) (int64, error)
	listByAuthorFn   func(context.Context, uint, int) ([]*models.Recipe, error)
	favoriteFn       func(context.Context, uint, uint) error
	unfavoriteFn     func(context.Context, uint, uint) error
	isFavoritedFn    func(context.Context, uint, uint) (bool, error)
	addToCartFn      func(context.Context, uint, uint) error
	removeFromCartFn func(context.Context, uint, uint) error
	isInCartFn       func(context.Context, uint, uint) (bool, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.createFn(ctx, recipe)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id, userID uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id, userID)
}
func (s *recipeRepoStub) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]*models.Recipe, int64, error) {
	return s.listFn(ctx, userID, filter)
}
func (s *recipeRepoStub) Update(ctx context.Context, recipe *models.Recipe) error {
	return s.updateFn(ctx, recipe)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *recipeRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]*models.Recipe, error) {
	return s.listByAuthorFn(ctx, authorID, limit)
}
func (s *recipeRepoStub) Favorite(ctx context.Context, userID, recipeID uint) error {
	return s.favoriteFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	return s.unfavoriteFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) IsFavorited(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) AddToCart(ctx context.Context, userID, recipeID uint) error {
	return s.addToCartFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	return s.removeFromCartFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) IsInCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isInCartFn(ctx, userID, recipeID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn:  func(_ context.Context, _ *models.Recipe) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Recipe, error) { return &models.Recipe{ID: id}, nil },
		listFn: func(_ context.Context, _ uint, _ repository.RecipeFilter) ([]*models.Recipe, int64, error) {
			return nil, 0, nil
		},
		updateFn:         func(_ context.Context, _ *models.Recipe) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		countByAuthorFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listByAuthorFn:   func(_ context.Context, _ uint, _ int) ([]*models.Recipe, error) { return nil, nil },
		favoriteFn:       func(_ context.Context, _, _ uint) error { return nil },
		unfavoriteFn:     func(_ context.Context, _, _ uint) error { return nil },
		isFavoritedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addToCartFn:      func(_ context.Context, _, _ uint) error { return nil },
		removeFromCartFn: func(_ context.Context, _, _ uint) error { return nil },
		isInCartFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getByIDFn  func(context.Context, uint) (*models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	listFn     func(context.Context) ([]models.Tag, error)
	createFn   func(context.Context, *models.Tag) error
}

func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}

func echoTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			tags := make([]models.Tag, 0, len(ids))
			for _, id := range ids {
				tags = append(tags, models.Tag{ID: id})
			}
			return tags, nil
		},
		listFn:   func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.Tag) error { return nil },
	}
}

// ingredientRepoStub is a stub for repository.IngredientRepository.
type ingredientRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Ingredient, error)
	getByIDsFn    func(context.Context, []uint) ([]models.Ingredient, error)
	listFn        func(context.Context, string) ([]models.Ingredient, error)
	createFn      func(context.Context, *models.Ingredient) error
	createBatchFn func(context.Context, []models.Ingredient) error
}

func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *ingredientRepoStub) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	return s.listFn(ctx, namePrefix)
}
func (s *ingredientRepoStub) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return s.createFn(ctx, ingredient)
}
func (s *ingredientRepoStub) CreateBatch(ctx context.Context, ingredients []models.Ingredient) error {
	return s.createBatchFn(ctx, ingredients)
}

func echoIngredientRepo() *ingredientRepoStub {
	return &ingredientRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Ingredient, error) {
			return &models.Ingredient{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Ingredient, error) {
			ingredients := make([]models.Ingredient, 0, len(ids))
			for _, id := range ids {
				ingredients = append(ingredients, models.Ingredient{ID: id})
			}
			return ingredients, nil
		},
		listFn:        func(_ context.Context, _ string) ([]models.Ingredient, error) { return nil, nil },
		createFn:      func(_ context.Context, _ *models.Ingredient) error { return nil },
		createBatchFn: func(_ context.Context, _ []models.Ingredient) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn      func(context.Context, uint, uint) error
	deleteFn      func(context.Context, uint, uint) error
	existsFn      func(context.Context, uint, uint) (bool, error)
	listAuthorsFn func(context.Context, uint, int, int) ([]models.User, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, userID, authorID uint) error {
	return s.createFn(ctx, userID, authorID)
}
func (s *followRepoStub) Delete(ctx context.Context, userID, authorID uint) error {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	return s.existsFn(ctx, userID, authorID)
}
func (s *followRepoStub) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	return s.listAuthorsFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn: func(_ context.Context, _, _ uint) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listAuthorsFn: func(_ context.Context, _ uint, _, _ int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
	}
}

// shoppingListRepoStub is a stub for repository.ShoppingListRepository.
type shoppingListRepoStub struct {
	aggregateFn func(context.Context, uint) ([]repository.ShoppingListItem, error)
}

func (s *shoppingListRepoStub) Aggregate(ctx context.Context, userID uint) ([]repository.ShoppingListItem, error) {
	return s.aggregateFn(ctx, userID)
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}
