package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users/
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{count=int,results=[]models.UserView}
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)

	views, total, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset, optionalUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if views == nil {
		views = []models.UserView{}
	}
	return c.JSON(pagedResponse(total, views))
}

// GetMyProfile handles GET /api/users/me
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserView
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	view, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}

// GetUserProfile handles GET /api/users/:id
// @Summary User profile by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.userService.GetProfile(c.Context(), id, optionalUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(view)
}
