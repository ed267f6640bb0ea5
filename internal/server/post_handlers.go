package server

import (
	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	actorID, _ := actor(c)

	post, createErr := s.postService.CreatePost(c.Context(), actorID, in)
	if createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, getErr := s.postRepo.GetByID(c.Context(), postID)
	if getErr != nil {
		return models.RespondWithAppError(c, getErr)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (owner or admin)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdatePostInput
	if parseErr := c.BodyParser(&in); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	actorID, isAdmin := actor(c)
	post, updateErr := s.postService.UpdatePost(c.Context(),
		service.Actor{ID: actorID, IsAdmin: isAdmin}, postID, in)
	if updateErr != nil {
		return models.RespondWithAppError(c, updateErr)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (owner or admin)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, isAdmin := actor(c)
	if deleteErr := s.postService.DeletePost(c.Context(),
		service.Actor{ID: actorID, IsAdmin: isAdmin}, postID); deleteErr != nil {
		return models.RespondWithAppError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Post has been deleted"})
}

// LikePost handles PUT /api/posts/:id/like, toggling the caller's like.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actorID, _ := actor(c)

	liked, likeErr := s.postService.ToggleLike(c.Context(), actorID, postID)
	if likeErr != nil {
		return models.RespondWithAppError(c, likeErr)
	}

	message := "Post has been disliked"
	if liked {
		message = "Post has been liked"
	}
	return c.JSON(fiber.Map{"message": message, "liked": liked})
}

// GetTimeline handles GET /api/posts/timeline/all/:userId
func (s *Server) GetTimeline(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	posts, composeErr := s.timeline.ComposeTimeline(c.Context(), userID)
	if composeErr != nil {
		return models.RespondWithAppError(c, composeErr)
	}

	return c.JSON(posts)
}

// GetProfileFeed handles GET /api/posts/profile/:username
func (s *Server) GetProfileFeed(c *fiber.Ctx) error {
	username := c.Params("username")

	posts, composeErr := s.timeline.ComposeProfileFeed(c.Context(), username)
	if composeErr != nil {
		return models.RespondWithAppError(c, composeErr)
	}

	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search?username=
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username query parameter is required"))
	}

	posts, composeErr := s.timeline.ComposeProfileFeed(c.Context(), username)
	if composeErr != nil {
		return models.RespondWithAppError(c, composeErr)
	}

	return c.JSON(posts)
}
