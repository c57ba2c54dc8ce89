package interfaces

import "blog-backend/internal/model"

// UserRepository defines the persistence contract for users. Find methods
// return (nil, nil) when no record matches.
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
	Count() (int, error)
	FindAll(page, pageSize int) ([]*model.User, error)
}
