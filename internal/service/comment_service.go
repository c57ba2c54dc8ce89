package service

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
)

// CommentServiceInterface is the contract handlers depend on, for mocking
// in tests.
type CommentServiceInterface interface {
	CreateComment(postID string, cc *model.CommentCreate) (*model.Comment, error)
	ListComments(postID string) ([]*model.Comment, error)
	DeleteComment(id, requesterID string) error
}

// CommentService handles comment business logic.
type CommentService struct {
	commentRepo interfaces.CommentRepository
	postRepo    interfaces.PostRepository
	userRepo    interfaces.UserRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(commentRepo interfaces.CommentRepository, postRepo interfaces.PostRepository, userRepo interfaces.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// CreateComment creates a comment on an existing post by an existing user.
func (s *CommentService) CreateComment(postID string, cc *model.CommentCreate) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}

	author, err := s.userRepo.FindByID(cc.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "author not found")
	}

	comment := &model.Comment{
		Content:  cc.Content,
		AuthorID: cc.AuthorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create comment", err)
	}
	return comment, nil
}

// ListComments returns all comments on an existing post.
func (s *CommentService) ListComments(postID string) ([]*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}
	return s.commentRepo.FindByPost(postID)
}

// DeleteComment removes a comment; only its author may do so.
func (s *CommentService) DeleteComment(id, requesterID string) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.New(errors.ErrCommentNotFound, "comment not found")
	}
	if comment.AuthorID != requesterID {
		return errors.New(errors.ErrForbidden, "only the author can delete a comment")
	}
	return s.commentRepo.Delete(id)
}
