package repository

import (
	"database/sql"
	"fmt"

	"github.com/FrankoSolomun/movie-watchlist/internal/models"
)

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByMovie returns all comments for a movie with author names, newest first.
func (r *CommentRepository) ListByMovie(movieID int) ([]models.Comment, error) {
	rows, err := r.db.Query(`
		SELECT c.id, c.user_id, c.movie_id, c.content,
			COALESCE(u.username, '') AS author,
			c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.movie_id = $1
		ORDER BY c.created_at DESC
	`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.UserID, &cm.MovieID, &cm.Content,
			&cm.Author, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

// Create inserts a comment and returns it with the author name attached.
func (r *CommentRepository) Create(userID, movieID int, content string) (*models.Comment, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO comments (user_id, movie_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, movieID, content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return r.GetByID(id)
}

// GetByID returns a single comment with its author name.
func (r *CommentRepository) GetByID(id int) (*models.Comment, error) {
	var cm models.Comment
	err := r.db.QueryRow(`
		SELECT c.id, c.user_id, c.movie_id, c.content,
			COALESCE(u.username, '') AS author,
			c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id).Scan(&cm.ID, &cm.UserID, &cm.MovieID, &cm.Content,
		&cm.Author, &cm.CreatedAt, &cm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// UpdateContent replaces a comment's content, owner-guarded. A missing row
// and a row owned by someone else are indistinguishable here.
func (r *CommentRepository) UpdateContent(id, userID int, content string) error {
	res, err := r.db.Exec(`
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, content, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return requireRow(res)
}

// Delete removes a comment, owner-guarded.
func (r *CommentRepository) Delete(id, userID int) error {
	res, err := r.db.Exec(`
		DELETE FROM comments WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireRow(res)
}
