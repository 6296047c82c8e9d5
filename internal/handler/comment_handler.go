package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/FrankoSolomun/movie-watchlist/internal/middleware"
	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/service"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	svc *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List returns all comments for a movie.
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} models.CommentListResponse
// @Router /movies/{id}/comments [get]
func (h *CommentHandler) List(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	result, err := h.svc.List(movieID)
	if err != nil {
		slog.Error("failed to list comments", "movie_id", movieID, "error", err)
		return respondError(c, err, "failed to retrieve comments")
	}
	return c.JSON(result)
}

// Create posts a comment on a movie.
// @Summary Post comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 201 {object} models.Comment
// @Failure 400 {object} ErrorResponse
// @Router /movies/{id}/comments [post]
func (h *CommentHandler) Create(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	movieID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	var req models.CreateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	comment, err := h.svc.Create(userID, movieID, req.Content)
	if err != nil {
		return respondError(c, err, "failed to create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Update edits a comment owned by the caller.
// @Summary Edit comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid comment ID"})
	}

	var req models.CreateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	comment, err := h.svc.Update(commentID, userID, req.Content)
	if err != nil {
		return respondError(c, err, "failed to update comment")
	}
	return c.JSON(comment)
}

// Delete removes a comment owned by the caller.
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	userID := middleware.UserID(c)
	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid comment ID"})
	}

	if err := h.svc.Delete(commentID, userID); err != nil {
		return respondError(c, err, "failed to delete comment")
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}
