package server

import (
	"commune/internal/models"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		UserID     uint    `json:"user_id"`
		Title      *string `json:"title"`
		Content    string  `json:"content"`
		ImageURL   string  `json:"image_url"`
		Visibility string  `json:"visibility"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     req.UserID,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /posts/:id. Only fields present in the body
// overwrite stored values; the owner is immutable.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		ImageURL   *string `json:"image_url"`
		Visibility *string `json:"visibility"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		ID:         id,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
