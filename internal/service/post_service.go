package service

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"
	"fmt"

	"go.uber.org/zap"
)

// PostServiceInterface is the contract handlers depend on, for mocking in
// tests.
type PostServiceInterface interface {
	CreatePost(pc *model.PostCreate) (*model.Post, error)
	GetPost(id string) (*model.Post, error)
	GetPostDetail(id string) (*model.PostResponse, error)
	ListPosts(page, pageSize int, status model.PostStatus) ([]*model.Post, int, error)
	UpdatePost(id string, upd *model.PostUpdate) (*model.Post, error)
	DeletePost(id string) error
}

// PostService handles post business logic: title uniqueness and the
// forward-only status lifecycle.
type PostService struct {
	postRepo    interfaces.PostRepository
	userRepo    interfaces.UserRepository
	commentRepo interfaces.CommentRepository
}

// NewPostService creates a new PostService instance.
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, commentRepo interfaces.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new post after checking the author exists and the
// title is not already taken.
func (s *PostService) CreatePost(pc *model.PostCreate) (*model.Post, error) {
	author, err := s.userRepo.FindByID(pc.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "author not found")
	}

	existing, err := s.postRepo.FindByTitle(pc.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrTitleExists, "a post with this title already exists")
	}

	post := &model.Post{
		Title:    pc.Title,
		Content:  pc.Content,
		Status:   pc.Status,
		Tags:     pc.Tags,
		AuthorID: pc.AuthorID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create post", err)
	}

	util.Logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("author_id", post.AuthorID))
	return post, nil
}

// GetPost returns a single post.
func (s *PostService) GetPost(id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}
	return post, nil
}

// GetPostDetail returns the full post response with author and comments
// nested, and counts the read as a view.
func (s *PostService) GetPostDetail(id string) (*model.PostResponse, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(id); err != nil {
		util.Logger.Warn("failed to increment views", zap.Error(err), zap.String("post_id", id))
	} else {
		post.Views++
	}

	resp := post.ToResponse()

	author, err := s.userRepo.FindByID(post.AuthorID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		resp.Author = author.ToResponse(nil)
	}

	comments, err := s.commentRepo.FindByPost(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comments", err)
	}
	resp.Comments = make([]*model.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp.Comments = append(resp.Comments, comment.ToResponse())
	}
	return resp, nil
}

// ListPosts returns a page of posts with the total count, optionally
// filtered by status.
func (s *PostService) ListPosts(page, pageSize int, status model.PostStatus) ([]*model.Post, int, error) {
	posts, err := s.postRepo.FindAll(page, pageSize, status)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(status)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdatePost applies non-nil fields of upd. A new title must stay unique
// and a new status must be a legal forward transition.
func (s *PostService) UpdatePost(id string, upd *model.PostUpdate) (*model.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil && *upd.Title != post.Title {
		existing, err := s.postRepo.FindByTitle(*upd.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.New(errors.ErrTitleExists, "a post with this title already exists")
		}
		post.Title = *upd.Title
	}

	if upd.Status != nil {
		next := model.PostStatus(*upd.Status)
		if !post.Status.CanTransitionTo(next) {
			return nil, errors.New(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot transition from %s to %s", post.Status, next))
		}
		post.Status = next
	}

	if upd.Content != nil {
		post.Content = *upd.Content
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update post", err)
	}
	return post, nil
}

// DeletePost removes a post and its comments.
func (s *PostService) DeletePost(id string) error {
	if _, err := s.GetPost(id); err != nil {
		return err
	}
	return s.postRepo.Delete(id)
}
