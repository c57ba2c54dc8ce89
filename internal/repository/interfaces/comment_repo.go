package interfaces

import "blog-backend/internal/model"

// CommentRepository defines the persistence contract for comments. Find
// methods return (nil, nil) when no record matches.
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id string) (*model.Comment, error)
	FindByPost(postID string) ([]*model.Comment, error)
	Delete(id string) error
}
