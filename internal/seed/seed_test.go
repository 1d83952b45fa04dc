package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadIngredients(t *testing.T) {
	t.Run("valid fixture", func(t *testing.T) {
		path := writeFixture(t, `
ingredients:
  - name: flour
    measurement_unit: g
  - name: milk
    measurement_unit: ml
`)
		ingredients, err := LoadIngredients(path)
		require.NoError(t, err)
		require.Len(t, ingredients, 2)
		assert.Equal(t, "flour", ingredients[0].Name)
		assert.Equal(t, "g", ingredients[0].MeasurementUnit)
		assert.Equal(t, "milk", ingredients[1].Name)
	})

	t.Run("entry without unit is rejected", func(t *testing.T) {
		path := writeFixture(t, `
ingredients:
  - name: flour
`)
		_, err := LoadIngredients(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadIngredients("/nonexistent/ingredients.yml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFixture(t, "ingredients: [not: valid: yaml")
		_, err := LoadIngredients(path)
		assert.Error(t, err)
	})
}

func TestImportIngredients(t *testing.T) {
	db := setupSeedTestDB(t)
	repo := repository.NewIngredientRepository(db)
	path := writeFixture(t, `
ingredients:
  - name: flour
    measurement_unit: g
  - name: salt
    measurement_unit: g
  - name: milk
    measurement_unit: ml
`)

	count, err := ImportIngredients(context.Background(), repo, path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	stored, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestFactoryCreateUser(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	admin, err := f.CreateUser(func(u *models.User) {
		u.Role = models.RoleAdmin
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestFactoryCreateRecipe(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db)

	author, err := f.CreateUser()
	require.NoError(t, err)
	tags, err := f.CreateTags()
	require.NoError(t, err)

	ingredients := []models.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "salt", MeasurementUnit: "g"},
	}
	require.NoError(t, db.Create(&ingredients).Error)

	for seq := 1; seq <= 5; seq++ {
		recipe, err := f.CreateRecipe(author, seq, tags, ingredients)
		require.NoError(t, err)
		assert.NotZero(t, recipe.ID)
		assert.NotEmpty(t, recipe.Tags)
		assert.NotEmpty(t, recipe.Ingredients)
		assert.GreaterOrEqual(t, recipe.CookingTime, 1)
	}

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestSeederRun(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)
	path := writeFixture(t, `
ingredients:
  - name: flour
    measurement_unit: g
  - name: milk
    measurement_unit: ml
  - name: salt
    measurement_unit: g
  - name: sugar
    measurement_unit: g
`)

	err := s.Run(context.Background(), Options{
		Users:           4,
		RecipesPerUser:  2,
		IngredientsFile: path,
		AdminEmail:      "admin@foodgram.local",
	})
	require.NoError(t, err)

	var users, recipes, tags, ingredients int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)

	assert.Equal(t, int64(5), users) // 4 demo users plus the admin
	assert.Equal(t, int64(8), recipes)
	assert.Equal(t, int64(3), tags)
	assert.Equal(t, int64(4), ingredients)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@foodgram.local").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
}

func TestSeederClearAll(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)
	path := writeFixture(t, `
ingredients:
  - name: flour
    measurement_unit: g
  - name: milk
    measurement_unit: ml
`)

	require.NoError(t, s.Run(context.Background(), Options{
		Users:           3,
		RecipesPerUser:  1,
		IngredientsFile: path,
	}))
	require.NoError(t, s.ClearAll())

	var users, recipes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.Zero(t, users)
	assert.Zero(t, recipes)
}
