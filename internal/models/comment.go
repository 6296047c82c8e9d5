package models

import "time"

// MaxCommentLength is the longest accepted comment, after trimming.
const MaxCommentLength = 1000

// Comment is a user comment on a movie.
type Comment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest is the request body for posting a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentListResponse is the comments listing for a movie.
type CommentListResponse struct {
	MovieID  int       `json:"movie_id"`
	Comments []Comment `json:"comments"`
}
