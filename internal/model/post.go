package model

import "time"

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// statusRank orders the lifecycle: transitions may only move forward.
var statusRank = map[PostStatus]int{
	StatusDraft:     0,
	StatusPublished: 1,
	StatusArchived:  2,
}

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether the status may move to next. Forward
// moves (and staying put) are allowed; a published post can never return
// to draft, and an archived post stays archived.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= cur
}

// Post is the persisted post record.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	Tags      []string   `json:"tags"`
	AuthorID  string     `json:"author_id"`
	Views     int        `json:"views"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// PostCreate is the input shape for creating a post.
type PostCreate struct {
	Title    string
	Content  string
	Status   PostStatus
	Tags     []string
	AuthorID string
}

// PostUpdate is the input shape for partially updating a post. Nil fields
// are left unchanged.
type PostUpdate struct {
	Title   *string `json:"title" binding:"omitempty,min=5,max=100"`
	Content *string `json:"content" binding:"omitempty,min=50"`
	Status  *string `json:"status" binding:"omitempty,post_status"`
}

// PostResponse is the output shape for a post. Author and Comments are
// attached only where the endpoint includes them.
type PostResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Status    PostStatus         `json:"status"`
	Tags      []string           `json:"tags"`
	AuthorID  string             `json:"author_id"`
	Views     int                `json:"views"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt *time.Time         `json:"updated_at"`
	Author    *UserResponse      `json:"author,omitempty"`
	Comments  []*CommentResponse `json:"comments,omitempty"`
}

// ToResponse projects a persisted post onto the output shape.
func (p *Post) ToResponse() *PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Status:    p.Status,
		Tags:      tags,
		AuthorID:  p.AuthorID,
		Views:     p.Views,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
