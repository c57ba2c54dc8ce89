package model

import "time"

// Comment is the persisted comment record.
type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"author_id"`
	PostID    string     `json:"post_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CommentCreate is the input shape for creating a comment. The post it
// belongs to comes from the URL, not the body.
type CommentCreate struct {
	Content  string
	AuthorID string
}

// CommentResponse is the output shape for a comment.
type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	AuthorID  string        `json:"author_id"`
	PostID    string        `json:"post_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`
	Author    *UserResponse `json:"author,omitempty"`
}

// ToResponse projects a persisted comment onto the output shape.
func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
