package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSubscriptions handles GET /api/users/subscriptions
// @Summary List followed authors with their recipes
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param recipes_limit query int false "Max recipes per author"
// @Success 200 {object} object{count=int,results=[]models.SubscriptionView}
// @Router /users/subscriptions [get]
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)
	recipesLimit := c.QueryInt("recipes_limit", 0)
	if recipesLimit < 0 {
		recipesLimit = 0
	}

	views, total, err := s.followService.Subscriptions(c.Context(), currentUserID(c), p.Limit, p.Offset, recipesLimit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if views == nil {
		views = []models.SubscriptionView{}
	}
	return c.JSON(pagedResponse(total, views))
}

// Subscribe handles POST /api/users/:id/subscribe
// @Summary Follow an author
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Max recipes in the response"
// @Success 201 {object} models.SubscriptionView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscribe [post]
func (s *Server) Subscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	recipesLimit := c.QueryInt("recipes_limit", 0)
	if recipesLimit < 0 {
		recipesLimit = 0
	}

	view, err := s.followService.Subscribe(c.Context(), currentUserID(c), authorID, recipesLimit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
// @Summary Unfollow an author
// @Tags subscriptions
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscribe [delete]
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unsubscribe(c.Context(), currentUserID(c), authorID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
