package sqlite

import (
	"blog-backend/internal/model"
	"blog-backend/internal/util"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userRepository implements interfaces.UserRepository over sqlite.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new userRepository instance.
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

const (
	sqlInsertUser = `
		INSERT INTO users (id, username, email, full_name, bio, password_hash, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	sqlSelectUser = `
		SELECT id, username, email, full_name, bio, password_hash, is_active, created_at, updated_at
		FROM users`
)

// Create inserts a new user, assigning its id and creation time.
func (r *userRepository) Create(user *model.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.IsActive = true

	_, err := r.db.Exec(sqlInsertUser,
		user.ID, user.Username, user.Email, user.FullName, user.Bio,
		user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		util.Logger.Error("failed to create user", zap.Error(err))
		return err
	}
	util.Logger.Debug("user created", zap.String("user_id", user.ID))
	return nil
}

// FindByID returns the user with the given id, or nil when absent.
func (r *userRepository) FindByID(id string) (*model.User, error) {
	return r.findOne(sqlSelectUser+` WHERE id = ?`, id)
}

// FindByEmail returns the user with the given email, or nil when absent.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(sqlSelectUser+` WHERE email = ?`, email)
}

// FindByUsername returns the user with the given username, or nil when absent.
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne(sqlSelectUser+` WHERE username = ?`, username)
}

func (r *userRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Bio,
		&user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update persists mutable user fields and stamps updated_at.
func (r *userRepository) Update(user *model.User) error {
	now := time.Now().UTC()
	user.UpdatedAt = &now
	_, err := r.db.Exec(`
		UPDATE users
		SET username = ?, email = ?, full_name = ?, bio = ?, updated_at = ?
		WHERE id = ?`,
		user.Username, user.Email, user.FullName, user.Bio, user.UpdatedAt, user.ID)
	return err
}

// Delete removes a user together with their posts and comments. The child
// rows must go first or the foreign keys on posts and comments reject the
// delete.
func (r *userRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE author_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		DELETE FROM comments
		WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE author_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		util.Logger.Error("failed to delete user", zap.Error(err), zap.String("user_id", id))
		return err
	}
	return tx.Commit()
}

// Count returns the total number of users.
func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// FindAll returns a page of users ordered by creation time.
func (r *userRepository) FindAll(page, pageSize int) ([]*model.User, error) {
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(sqlSelectUser+` ORDER BY created_at LIMIT ? OFFSET ?`, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FullName, &user.Bio,
			&user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
