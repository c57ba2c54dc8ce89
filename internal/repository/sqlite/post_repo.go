package sqlite

import (
	"blog-backend/internal/model"
	"blog-backend/internal/util"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// postRepository implements interfaces.PostRepository over sqlite. Tags are
// stored as a JSON array in a TEXT column.
type postRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new postRepository instance.
func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db}
}

const (
	sqlInsertPost = `
		INSERT INTO posts (id, title, content, status, tags, author_id, views, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)`

	sqlSelectPost = `
		SELECT id, title, content, status, tags, author_id, views, created_at, updated_at
		FROM posts`
)

// Create inserts a new post, assigning its id and creation time.
func (r *postRepository) Create(post *model.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	if post.Tags == nil {
		post.Tags = []string{}
	}

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(sqlInsertPost,
		post.ID, post.Title, post.Content, string(post.Status), string(tags),
		post.AuthorID, post.CreatedAt)
	if err != nil {
		util.Logger.Error("failed to create post", zap.Error(err))
		return err
	}
	util.Logger.Debug("post created", zap.String("post_id", post.ID))
	return nil
}

// FindByID returns the post with the given id, or nil when absent.
func (r *postRepository) FindByID(id string) (*model.Post, error) {
	return scanPost(r.db.QueryRow(sqlSelectPost+` WHERE id = ?`, id))
}

// FindByTitle returns the post with the given title, compared
// case-insensitively, or nil when absent.
func (r *postRepository) FindByTitle(title string) (*model.Post, error) {
	return scanPost(r.db.QueryRow(sqlSelectPost+` WHERE LOWER(title) = LOWER(?)`, title))
}

// FindByAuthor returns all posts by the given author, newest first.
func (r *postRepository) FindByAuthor(authorID string) ([]*model.Post, error) {
	rows, err := r.db.Query(sqlSelectPost+` WHERE author_id = ? ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Update persists mutable post fields and stamps updated_at.
func (r *postRepository) Update(post *model.Post) error {
	now := time.Now().UTC()
	post.UpdatedAt = &now

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE posts
		SET title = ?, content = ?, status = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		post.Title, post.Content, string(post.Status), string(tags), post.UpdatedAt, post.ID)
	return err
}

// Delete removes a post and its comments.
func (r *postRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Count returns the number of posts, optionally filtered by status.
func (r *postRepository) Count(status model.PostStatus) (int, error) {
	var count int
	var err error
	if status == "" {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	} else {
		err = r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE status = ?`, string(status)).Scan(&count)
	}
	return count, err
}

// FindAll returns a page of posts, newest first, optionally filtered by
// status.
func (r *postRepository) FindAll(page, pageSize int, status model.PostStatus) ([]*model.Post, error) {
	offset := (page - 1) * pageSize

	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = r.db.Query(sqlSelectPost+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			pageSize, offset)
	} else {
		rows, err = r.db.Query(sqlSelectPost+` WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			string(status), pageSize, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// IncrementViews bumps the view counter of a post.
func (r *postRepository) IncrementViews(id string) error {
	_, err := r.db.Exec(`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var post model.Post
	var status, tags string
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &status, &tags,
		&post.AuthorID, &post.Views, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	post.Status = model.PostStatus(status)
	if err := json.Unmarshal([]byte(tags), &post.Tags); err != nil {
		return nil, err
	}
	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
