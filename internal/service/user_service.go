package service

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/repository/interfaces"
	"blog-backend/internal/util"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceInterface is the contract handlers depend on, for mocking in
// tests.
type UserServiceInterface interface {
	Register(uc *model.UserCreate) (*model.User, error)
	Login(email, password string) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	GetUserWithPosts(id string) (*model.UserResponse, error)
	ListUsers(page, pageSize int) ([]*model.User, int, error)
	UpdateUser(id string, upd *model.UserUpdate) (*model.User, error)
	DeleteUser(id string) error
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// UserService handles user business logic.
type UserService struct {
	userRepo interfaces.UserRepository
	postRepo interfaces.PostRepository

	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo interfaces.UserRepository, postRepo interfaces.PostRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		postRepo:       postRepo,
		tokenBlacklist: make(map[string]time.Time),
	}
}

// Register creates a new user. The password in uc is already hashed by the
// input schema.
func (s *UserService) Register(uc *model.UserCreate) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(uc.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "username already exists")
	}

	existing, err = s.userRepo.FindByEmail(uc.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(errors.ErrUserExists, "email already registered")
	}

	user := &model.User{
		Username:     uc.Username,
		Email:        uc.Email,
		FullName:     uc.FullName,
		Bio:          uc.Bio,
		PasswordHash: uc.PasswordHash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create user", err)
	}

	util.Logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and returns the matching user.
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}
	return user, nil
}

// GetUserByID returns a single user.
func (s *UserService) GetUserByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// GetUserWithPosts returns the full user response with the user's posts
// nested.
func (s *UserService) GetUserWithPosts(id string) (*model.UserResponse, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.FindByAuthor(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load posts", err)
	}

	responses := make([]*model.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, post.ToResponse())
	}
	return user.ToResponse(responses), nil
}

// ListUsers returns a page of users with the total count.
func (s *UserService) ListUsers(page, pageSize int) ([]*model.User, int, error) {
	users, err := s.userRepo.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateUser applies non-nil fields of upd to the stored user.
func (s *UserService) UpdateUser(id string, upd *model.UserUpdate) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		existing, err := s.userRepo.FindByUsername(*upd.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.New(errors.ErrUserExists, "username already exists")
		}
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.FullName != nil {
		user.FullName = upd.FullName
	}
	if upd.Bio != nil {
		user.Bio = upd.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update user", err)
	}
	return user, nil
}

// DeleteUser removes a user and everything they authored.
func (s *UserService) DeleteUser(id string) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete user", err)
	}
	return nil
}

// Logout blacklists a token until its natural expiry window passes. Entries
// already past their expiry are swept here so the map stays bounded by the
// number of live tokens.
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()

	now := time.Now()
	for t, expiry := range s.tokenBlacklist {
		if now.After(expiry) {
			delete(s.tokenBlacklist, t)
		}
	}
	s.tokenBlacklist[token] = now.Add(24 * time.Hour)
}

// IsTokenBlacklisted reports whether a token has been revoked.
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	defer s.blacklistMutex.RUnlock()
	expiry, ok := s.tokenBlacklist[token]
	return ok && time.Now().Before(expiry)
}
