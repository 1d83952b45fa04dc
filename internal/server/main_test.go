package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an in-memory sqlite database with the
// real repository and service wiring. Redis stays uninitialized; the cache
// package degrades to a pass-through without a client.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	cfg := &config.Config{
		JWTSecret: "test-secret-key-for-handler-tests",
		MediaDir:  t.TempDir(),
	}

	s := &Server{
		config:           cfg,
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		ingredientRepo:   repository.NewIngredientRepository(db),
		recipeRepo:       repository.NewRecipeRepository(db),
		followRepo:       repository.NewFollowRepository(db),
		shoppingListRepo: repository.NewShoppingListRepository(db),
	}
	s.imageService = service.NewImageService(cfg)
	s.userService = service.NewUserService(s.userRepo, s.followRepo)
	s.tagService = service.NewTagService(s.tagRepo)
	s.ingredientService = service.NewIngredientService(s.ingredientRepo)
	s.recipeService = service.NewRecipeService(
		s.recipeRepo, s.tagRepo, s.ingredientRepo, s.followRepo,
		s.imageService, s.isAdminByUserID,
	)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo, s.recipeRepo)
	s.shoppingListService = service.NewShoppingListService(s.shoppingListRepo, s.userRepo)
	return s
}

// authAs injects the user ID the way the auth middleware would.
func authAs(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  string(hash),
		Role:      models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := seedUser(t, db, username, email)
	require.NoError(t, db.Model(user).Update("role", models.RoleAdmin).Error)
	user.Role = models.RoleAdmin
	return user
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: models.TagColorGreen, Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ing).Error)
	return ing
}

func seedRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tag *models.Tag, ing *models.Ingredient) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "media/recipes/seed.webp",
		Text:        "Seeded recipe text",
		CookingTime: 15,
		Tags:        []models.Tag{*tag},
		Ingredients: []models.RecipeIngredient{
			{IngredientID: ing.ID, Amount: 100},
		},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// pngDataURI builds a tiny valid PNG and wraps it as a base64 data URI.
func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
