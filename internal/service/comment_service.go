package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
	"github.com/FrankoSolomun/movie-watchlist/internal/repository"
)

// CommentService handles validation and ownership rules for comments.
type CommentService struct {
	repo *repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo *repository.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// validateContent trims and checks comment content. Empty-after-trim and
// over-length are distinct rejections.
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", validationError("comment cannot be empty")
	}
	// Character count, not bytes: the column is VARCHAR(1000).
	if utf8.RuneCountInString(trimmed) > models.MaxCommentLength {
		return "", validationError(fmt.Sprintf("comment must be at most %d characters", models.MaxCommentLength))
	}
	return trimmed, nil
}

// List returns all comments for a movie.
func (s *CommentService) List(movieID int) (*models.CommentListResponse, error) {
	comments, err := s.repo.ListByMovie(movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return &models.CommentListResponse{MovieID: movieID, Comments: comments}, nil
}

// Create posts a comment on a movie.
func (s *CommentService) Create(userID, movieID int, content string) (*models.Comment, error) {
	if movieID <= 0 {
		return nil, validationError("movie ID is required")
	}
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Create(userID, movieID, trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// Update edits a comment owned by the caller.
func (s *CommentService) Update(commentID, userID int, content string) (*models.Comment, error) {
	trimmed, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContent(commentID, userID, trimmed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return s.repo.GetByID(commentID)
}

// Delete removes a comment owned by the caller.
func (s *CommentService) Delete(commentID, userID int) error {
	if err := s.repo.Delete(commentID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
