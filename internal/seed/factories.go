// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSeedPassword is the password every generated account gets, so
// demo accounts are usable from the frontend.
const DefaultSeedPassword = "foodgram123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Password:  string(hash),
		Role:      models.RoleUser,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTags persists the standard tag catalog, one tag per palette color.
func (f *Factory) CreateTags() ([]models.Tag, error) {
	tags := []models.Tag{
		{Name: "Breakfast", Color: models.TagColorChocolate, Slug: "breakfast"},
		{Name: "Lunch", Color: models.TagColorGreen, Slug: "lunch"},
		{Name: "Dinner", Color: models.TagColorAqua, Slug: "dinner"},
	}
	if err := f.db.Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateRecipe persists a recipe for the author with 1-2 random tags and
// 2-4 random ingredients. The name carries a counter suffix so repeated
// calls never hit the per-author unique name constraint.
func (f *Factory) CreateRecipe(author *models.User, seq int, tags []models.Tag, ingredients []models.Ingredient) (*models.Recipe, error) {
	picked := f.pickTags(tags)
	rows := f.pickIngredientRows(ingredients)

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        fmt.Sprintf("%s %s #%d", gofakeit.AdjectiveDescriptive(), gofakeit.Dinner(), seq),
		Image:       fmt.Sprintf("media/recipes/demo-%s.webp", gofakeit.UUID()),
		Text:        gofakeit.Paragraph(1, 3, 8, "\n"),
		CookingTime: gofakeit.Number(5, 180),
		Tags:        picked,
		Ingredients: rows,
	}

	daysBack := f.rng.Intn(90)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateFollow links follower to author, skipping self-follows.
func (f *Factory) CreateFollow(followerID, authorID uint) error {
	if followerID == authorID {
		return nil
	}
	return f.db.Create(&models.Follow{UserID: followerID, AuthorID: authorID}).Error
}

// CreateFavorite marks the recipe as favorited by the user.
func (f *Factory) CreateFavorite(userID, recipeID uint) error {
	return f.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

// CreateCartItem puts the recipe into the user's shopping cart.
func (f *Factory) CreateCartItem(userID, recipeID uint) error {
	return f.db.Create(&models.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
}

func (f *Factory) pickTags(tags []models.Tag) []models.Tag {
	if len(tags) == 0 {
		return nil
	}
	count := 1 + f.rng.Intn(min(2, len(tags)))
	perm := f.rng.Perm(len(tags))
	picked := make([]models.Tag, 0, count)
	for _, idx := range perm[:count] {
		picked = append(picked, tags[idx])
	}
	return picked
}

func (f *Factory) pickIngredientRows(ingredients []models.Ingredient) []models.RecipeIngredient {
	if len(ingredients) == 0 {
		return nil
	}
	count := 2 + f.rng.Intn(3)
	if count > len(ingredients) {
		count = len(ingredients)
	}
	perm := f.rng.Perm(len(ingredients))
	rows := make([]models.RecipeIngredient, 0, count)
	for _, idx := range perm[:count] {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: ingredients[idx].ID,
			Amount:       gofakeit.Number(1, 500),
		})
	}
	return rows
}
