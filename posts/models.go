// Package posts implements the feed: listing, creating, reading and
// deleting short text posts.
package posts

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author is the subset of a user embedded in every post.
type Author struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Bio   string    `json:"bio"`
}

// Post is a post as returned by the API.
// Likes holds user ids; no endpoint writes it.
type Post struct {
	ID        uuid.UUID `json:"_id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Content string `json:"content" example:"Hello, network!" validate:"required,max=1000" messages:"required=Post content cannot be empty;max=Post content cannot exceed 1000 characters"`
}

// Normalize trims the content, so whitespace-only posts count as empty.
func (r *CreatePostRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

// PostResponse wraps a single post.
type PostResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Post created successfully"`
	Data    *Post  `json:"data"`
}

// PostListResponse wraps a list of posts.
type PostListResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Posts retrieved successfully"`
	Data    []Post `json:"data"`
}

// MessageResponse is a success envelope without payload.
type MessageResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Post deleted successfully"`
}
