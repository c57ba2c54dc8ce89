package interfaces

import "blog-backend/internal/model"

// PostRepository defines the persistence contract for posts. Find methods
// return (nil, nil) when no record matches.
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id string) (*model.Post, error)
	// FindByTitle matches case-insensitively; titles are unique that way.
	FindByTitle(title string) (*model.Post, error)
	FindByAuthor(authorID string) ([]*model.Post, error)
	Update(post *model.Post) error
	Delete(id string) error
	Count(status model.PostStatus) (int, error)
	// FindAll pages through posts, optionally filtered by status (empty
	// status means no filter).
	FindAll(page, pageSize int, status model.PostStatus) ([]*model.Post, error)
	IncrementViews(id string) error
}
