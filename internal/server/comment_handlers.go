package server

import (
	"commune/internal/models"
	"commune/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// GetComment handles GET /comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// CreateComment handles POST /comments. A null parent_id creates a top-level
// comment on the post; a non-null parent_id creates a reply.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		UserID   uint   `json:"user_id"`
		PostID   uint   `json:"post_id"`
		ParentID *uint  `json:"parent_id"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:   req.UserID,
		PostID:   req.PostID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content *string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		ID:      id,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id. Replies to the deleted comment
// are left in place.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPostComments handles GET /posts/:id/comments: the threaded projection of
// a post's top-level comments, each with one layer of direct replies.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	threads, err := s.commentService.ListPostComments(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(threads)
}

// GetCommentReplies handles GET /comments/:id/replies: the flat projection of
// a comment's direct replies.
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	replies, err := s.commentService.ListReplies(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(replies)
}
