package sqlite

import (
	"blog-backend/internal/model"
	"blog-backend/internal/util"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// commentRepository implements interfaces.CommentRepository over sqlite.
type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new commentRepository instance.
func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db}
}

const sqlSelectComment = `
	SELECT id, content, author_id, post_id, created_at, updated_at
	FROM comments`

// Create inserts a new comment, assigning its id and creation time.
func (r *commentRepository) Create(comment *model.Comment) error {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO comments (id, content, author_id, post_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.Content, comment.AuthorID, comment.PostID, comment.CreatedAt)
	if err != nil {
		util.Logger.Error("failed to create comment", zap.Error(err))
		return err
	}
	return nil
}

// FindByID returns the comment with the given id, or nil when absent.
func (r *commentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.QueryRow(sqlSelectComment+` WHERE id = ?`, id).Scan(
		&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns all comments on a post, oldest first.
func (r *commentRepository) FindByPost(postID string) ([]*model.Comment, error) {
	rows, err := r.db.Query(sqlSelectComment+` WHERE post_id = ? ORDER BY created_at`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(
			&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID,
			&comment.CreatedAt, &comment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// Delete removes a comment.
func (r *commentRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	return err
}
