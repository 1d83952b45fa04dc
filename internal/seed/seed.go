package seed

import (
	"context"
	"fmt"
	"log"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"gorm.io/gorm"
)

// Options controls how much demo data the seeder creates.
type Options struct {
	Users           int
	RecipesPerUser  int
	IngredientsFile string
	// AdminEmail gets a dedicated admin account when set.
	AdminEmail string
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seedable data. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"shopping_carts", "favorites", "follows",
		"recipe_ingredients", "recipe_tags", "recipes",
		"ingredients", "tags", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("cleared existing data")
	return nil
}

// Run creates the tag catalog, loads the ingredient fixture and generates
// users, recipes, follows, favorites and cart entries.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	tags, err := s.factory.CreateTags()
	if err != nil {
		return fmt.Errorf("create tags: %w", err)
	}
	log.Printf("created %d tags", len(tags))

	var ingredients []models.Ingredient
	if opts.IngredientsFile != "" {
		repo := repository.NewIngredientRepository(s.db)
		count, err := ImportIngredients(ctx, repo, opts.IngredientsFile)
		if err != nil {
			return fmt.Errorf("import ingredients: %w", err)
		}
		log.Printf("imported %d ingredients", count)

		ingredients, err = repo.List(ctx, "")
		if err != nil {
			return fmt.Errorf("list ingredients: %w", err)
		}
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users (password %q)", len(users), DefaultSeedPassword)

	if opts.AdminEmail != "" {
		admin, err := s.factory.CreateUser(func(u *models.User) {
			u.Email = opts.AdminEmail
			u.Username = "admin"
			u.Role = models.RoleAdmin
		})
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Printf("created admin account %s", admin.Email)
	}

	var recipes []*models.Recipe
	if len(ingredients) > 0 {
		for _, user := range users {
			for i := 0; i < opts.RecipesPerUser; i++ {
				recipe, err := s.factory.CreateRecipe(user, i+1, tags, ingredients)
				if err != nil {
					return fmt.Errorf("create recipe: %w", err)
				}
				recipes = append(recipes, recipe)
			}
		}
		log.Printf("created %d recipes", len(recipes))
	}

	if err := s.createSocialMesh(users, recipes); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}

// createSocialMesh adds follows, favorites and cart entries so listings,
// subscriptions and the shopping list have data to show.
func (s *Seeder) createSocialMesh(users []*models.User, recipes []*models.Recipe) error {
	if len(users) < 2 || len(recipes) == 0 {
		return nil
	}

	follows, favorites, cartItems := 0, 0, 0
	for _, user := range users {
		// Follow roughly a third of the other users.
		for _, author := range users {
			if author.ID == user.ID || s.factory.rng.Intn(3) != 0 {
				continue
			}
			if err := s.factory.CreateFollow(user.ID, author.ID); err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
			follows++
		}

		for _, recipe := range recipes {
			roll := s.factory.rng.Intn(10)
			if roll < 2 {
				if err := s.factory.CreateFavorite(user.ID, recipe.ID); err != nil {
					return fmt.Errorf("create favorite: %w", err)
				}
				favorites++
			}
			if roll == 0 {
				if err := s.factory.CreateCartItem(user.ID, recipe.ID); err != nil {
					return fmt.Errorf("create cart item: %w", err)
				}
				cartItems++
			}
		}
	}

	log.Printf("created %d follows, %d favorites, %d cart items", follows, favorites, cartItems)
	return nil
}
