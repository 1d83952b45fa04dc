package server

import (
	"fmt"

	"foodgram/internal/models"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipePayload struct {
	Name        string                          `json:"name"`
	Image       string                          `json:"image"`
	Text        string                          `json:"text"`
	CookingTime int                             `json:"cooking_time"`
	Tags        []uint                          `json:"tags"`
	Ingredients []service.IngredientAmountInput `json:"ingredients"`
}

// GetRecipes handles GET /api/recipes/
// @Summary List recipes with filters
// @Tags recipes
// @Produce json
// @Param author query int false "Filter by author ID"
// @Param tags query []string false "Filter by tag slugs (repeatable, OR semantics)"
// @Param is_favorited query bool false "Only the caller's favorites"
// @Param is_in_shopping_cart query bool false "Only recipes in the caller's cart"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{count=int,results=[]models.RecipeView}
// @Router /recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)

	authorID := c.QueryInt("author", 0)
	if authorID < 0 {
		authorID = 0
	}

	var tagSlugs []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("tags") {
		if len(raw) > 0 {
			tagSlugs = append(tagSlugs, string(raw))
		}
	}

	views, total, err := s.recipeService.ListRecipes(c.Context(), service.ListRecipesInput{
		CurrentUserID: optionalUserID(c),
		AuthorID:      uint(authorID),
		TagSlugs:      tagSlugs,
		FavoritedOnly: c.QueryBool("is_favorited"),
		InCartOnly:    c.QueryBool("is_in_shopping_cart"),
		Limit:         p.Limit,
		Offset:        p.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if views == nil {
		views = []models.RecipeView{}
	}
	return c.JSON(pagedResponse(total, views))
}

// CreateRecipe handles POST /api/recipes/
// @Summary Publish a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body recipePayload true "Recipe"
// @Success 201 {object} models.RecipeView
// @Failure 400 {object} models.ErrorResponse
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		AuthorID:    currentUserID(c),
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Recipe by ID
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeView
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.recipeService.GetRecipe(c.Context(), id, optionalUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// UpdateRecipe handles PATCH /api/recipes/:id
// @Summary Update a recipe (author or admin only)
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body recipePayload true "Full replacement payload"
// @Success 200 {object} models.RecipeView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [patch]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipePayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:      currentUserID(c),
		RecipeID:    id,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe (author or admin only)
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FavoriteRecipe handles POST /api/recipes/:id/favorite
// @Summary Add a recipe to favorites
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.RecipeMiniView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/favorite [post]
func (s *Server) FavoriteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.recipeService.FavoriteRecipe(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UnfavoriteRecipe handles DELETE /api/recipes/:id/favorite
// @Summary Remove a recipe from favorites
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/favorite [delete]
func (s *Server) UnfavoriteRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.UnfavoriteRecipe(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddToShoppingCart handles POST /api/recipes/:id/shopping_cart
// @Summary Add a recipe to the shopping cart
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.RecipeMiniView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/shopping_cart [post]
func (s *Server) AddToShoppingCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.recipeService.AddToCart(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// RemoveFromShoppingCart handles DELETE /api/recipes/:id/shopping_cart
// @Summary Remove a recipe from the shopping cart
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/shopping_cart [delete]
func (s *Server) RemoveFromShoppingCart(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.RemoveFromCart(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart
// @Summary Download the aggregated shopping list as plain text
// @Tags recipes
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "text/plain attachment"
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/download_shopping_cart [get]
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	content, filename, err := s.shoppingListService.BuildList(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(content)
}
