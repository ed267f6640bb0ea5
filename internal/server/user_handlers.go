package server

import (
	"strconv"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users?userId=|username=
func (s *Server) GetUser(c *fiber.Ctx) error {
	userIDStr := c.Query("userId")
	username := c.Query("username")

	var user *models.User
	switch {
	case userIDStr != "":
		id, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil || id == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid userId"))
		}
		u, getErr := s.userRepo.GetByID(c.Context(), uint(id))
		if getErr != nil {
			return models.RespondWithAppError(c, getErr)
		}
		user = u
	case username != "":
		u, getErr := s.userRepo.GetByUsername(c.Context(), username)
		if getErr != nil {
			return models.RespondWithAppError(c, getErr)
		}
		if u == nil {
			return models.RespondWithAppError(c,
				models.NewNotFoundError("User", username))
		}
		user = u
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId or username query parameter is required"))
	}

	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c, 20)
	users, err := s.userRepo.SearchByUsername(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(users)
}

// GetAllUsers handles GET /api/users/all (admin only)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(users)
}

// GetFriends handles GET /api/users/friends/:userId
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friends, friendsErr := s.userService.Friends(c.Context(), userID)
	if friendsErr != nil {
		return models.RespondWithAppError(c, friendsErr)
	}

	return c.JSON(friends)
}

// UpdateUser handles PUT /api/users/:id (self-or-admin)
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateProfileInput
	if parseErr := c.BodyParser(&in); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, updateErr := s.userService.UpdateProfile(c.Context(), userID, in)
	if updateErr != nil {
		return models.RespondWithAppError(c, updateErr)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (self-or-admin)
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.userService.DeleteAccount(c.Context(), userID); deleteErr != nil {
		return models.RespondWithAppError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Account has been deleted"})
}

// FollowUser handles PUT /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actorID, _ := actor(c)

	if followErr := s.relationships.Follow(c.Context(), actorID, targetID); followErr != nil {
		return models.RespondWithAppError(c, followErr)
	}

	return c.JSON(fiber.Map{"message": "User has been followed"})
}

// UnfollowUser handles PUT /api/users/:id/unfollow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actorID, _ := actor(c)

	if unfollowErr := s.relationships.Unfollow(c.Context(), actorID, targetID); unfollowErr != nil {
		return models.RespondWithAppError(c, unfollowErr)
	}

	return c.JSON(fiber.Map{"message": "User has been unfollowed"})
}
