package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags/
// @Summary List all tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
// @Summary Tag by ID
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id} [get]
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.GetTag(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags/ (admin only)
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,color=string,slug=string} true "Tag"
// @Success 201 {object} models.Tag
// @Failure 400 {object} models.ErrorResponse
// @Router /tags [post]
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.tagService.CreateTag(c.Context(), req.Name, req.Color, req.Slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// GetIngredients handles GET /api/ingredients/?name=prefix
// @Summary List ingredients, optionally filtered by name prefix
// @Tags ingredients
// @Produce json
// @Param name query string false "Case-insensitive name prefix"
// @Success 200 {array} models.Ingredient
// @Router /ingredients [get]
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := s.ingredientService.ListIngredients(c.Context(), c.Query("name"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
// @Summary Ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.ErrorResponse
// @Router /ingredients/{id} [get]
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, err := s.ingredientService.GetIngredient(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(ingredient)
}
