package server

import (
	"net/http"
	"testing"

	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	tags := app.Group("/api/tags")
	tags.Get("/", s.GetTags)
	tags.Post("/", authAs(userID), s.AdminRequired(), s.CreateTag)
	tags.Get("/:id", s.GetTag)

	ingredients := app.Group("/api/ingredients")
	ingredients.Get("/", s.GetIngredients)
	ingredients.Get("/:id", s.GetIngredient)
	return app
}

func TestTagHandlers(t *testing.T) {
	s := newTestServer(t)
	admin := seedAdmin(t, s.db, "admin", "admin@example.com")
	plain := seedUser(t, s.db, "plain", "plain@example.com")
	breakfast := seedTag(t, s.db, "Breakfast", "breakfast")
	seedTag(t, s.db, "Dinner", "dinner")

	t.Run("list returns all tags", func(t *testing.T) {
		app := setupCatalogApp(s, 0)
		resp := doJSON(t, app, http.MethodGet, "/api/tags/", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var tags []models.Tag
		decodeBody(t, resp, &tags)
		assert.Len(t, tags, 2)
	})

	t.Run("get by id", func(t *testing.T) {
		app := setupCatalogApp(s, 0)
		resp := doJSON(t, app, http.MethodGet, "/api/tags/"+itoa(breakfast.ID), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var tag models.Tag
		decodeBody(t, resp, &tag)
		assert.Equal(t, "breakfast", tag.Slug)
	})

	t.Run("get missing tag", func(t *testing.T) {
		app := setupCatalogApp(s, 0)
		resp := doJSON(t, app, http.MethodGet, "/api/tags/999", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("admin creates a tag", func(t *testing.T) {
		app := setupCatalogApp(s, admin.ID)
		resp := doJSON(t, app, http.MethodPost, "/api/tags/", fiber.Map{
			"name":  "Dessert",
			"color": models.TagColorAqua,
			"slug":  "dessert",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var tag models.Tag
		decodeBody(t, resp, &tag)
		assert.NotZero(t, tag.ID)
		assert.Equal(t, "dessert", tag.Slug)
	})

	t.Run("color outside the palette is rejected", func(t *testing.T) {
		app := setupCatalogApp(s, admin.ID)
		resp := doJSON(t, app, http.MethodPost, "/api/tags/", fiber.Map{
			"name":  "Neon",
			"color": "#FF00FF",
			"slug":  "neon",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		app := setupCatalogApp(s, admin.ID)
		resp := doJSON(t, app, http.MethodPost, "/api/tags/", fiber.Map{
			"name":  "Second Breakfast",
			"color": models.TagColorGreen,
			"slug":  "breakfast",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-admin cannot create tags", func(t *testing.T) {
		app := setupCatalogApp(s, plain.ID)
		resp := doJSON(t, app, http.MethodPost, "/api/tags/", fiber.Map{
			"name":  "Lunch",
			"color": models.TagColorGreen,
			"slug":  "lunch",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestIngredientHandlers(t *testing.T) {
	s := newTestServer(t)
	flour := seedIngredient(t, s.db, "Flour", "g")
	seedIngredient(t, s.db, "Flax seeds", "g")
	seedIngredient(t, s.db, "Milk", "ml")
	app := setupCatalogApp(s, 0)

	t.Run("list without filter", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/", nil)
		var ingredients []models.Ingredient
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &ingredients)
		assert.Len(t, ingredients, 3)
	})

	t.Run("prefix search is case-insensitive", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/?name=fl", nil)
		var ingredients []models.Ingredient
		decodeBody(t, resp, &ingredients)
		require.Len(t, ingredients, 2)
		for _, ing := range ingredients {
			assert.Contains(t, []string{"Flour", "Flax seeds"}, ing.Name)
		}
	})

	t.Run("prefix without matches yields empty list", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/?name=zz", nil)
		var ingredients []models.Ingredient
		decodeBody(t, resp, &ingredients)
		assert.Empty(t, ingredients)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/"+itoa(flour.ID), nil)
		var ing models.Ingredient
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &ing)
		assert.Equal(t, "Flour", ing.Name)
		assert.Equal(t, "g", ing.MeasurementUnit)
	})

	t.Run("get missing ingredient", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/ingredients/999", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
