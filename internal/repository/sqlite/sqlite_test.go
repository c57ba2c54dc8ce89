package sqlite

import (
	"blog-backend/internal/model"
	"blog-backend/internal/util"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the application schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	util.InitLogger("error")

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// a second pooled connection would see a different in-memory database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			full_name     TEXT,
			bio           TEXT,
			password_hash TEXT NOT NULL,
			is_active     INTEGER NOT NULL DEFAULT 1,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME
		);
		CREATE TABLE posts (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'draft',
			tags       TEXT NOT NULL DEFAULT '[]',
			author_id  TEXT NOT NULL REFERENCES users(id),
			views      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME
		);
		CREATE TABLE comments (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			author_id  TEXT NOT NULL REFERENCES users(id),
			post_id    TEXT NOT NULL REFERENCES posts(id),
			created_at DATETIME NOT NULL,
			updated_at DATETIME
		);`)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *sql.DB) *model.User {
	t.Helper()
	repo := NewUserRepository(db)
	user := &model.User{
		Username:     "janedoe",
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := seedUser(t, db)
	assert.NotEmpty(t, user.ID, "id is assigned at persistence time")
	assert.False(t, user.CreatedAt.IsZero())
	assert.True(t, user.IsActive)

	found, err := repo.FindByID(user.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "janedoe", found.Username)

	byEmail, err := repo.FindByEmail("jane@example.com")
	assert.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.FindByID("nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := seedUser(t, db)

	bio := "updated bio"
	user.Bio = &bio
	assert.NoError(t, repo.Update(user))
	assert.NotNil(t, user.UpdatedAt)

	found, err := repo.FindByID(user.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Bio)
	assert.Equal(t, "updated bio", *found.Bio)
}

func TestPostRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewPostRepository(db)

	post := &model.Post{
		Title:    "Test Post Title",
		Content:  "a sufficiently long piece of content for the repository test",
		Status:   model.StatusDraft,
		Tags:     []string{"go", "testing"},
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(post))
	assert.NotEmpty(t, post.ID)

	found, err := repo.FindByID(post.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"go", "testing"}, found.Tags)
	assert.Equal(t, model.StatusDraft, found.Status)
}

func TestPostRepositoryFindByTitleCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewPostRepository(db)

	post := &model.Post{
		Title:    "Test Post Title",
		Content:  "a sufficiently long piece of content for the repository test",
		Status:   model.StatusDraft,
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(post))

	found, err := repo.FindByTitle("TEST post title")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.ID, found.ID)
}

func TestPostRepositoryFindAllStatusFilter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewPostRepository(db)

	for i, status := range []model.PostStatus{model.StatusDraft, model.StatusPublished, model.StatusPublished} {
		post := &model.Post{
			Title:    "Post Number " + string(rune('A'+i)),
			Content:  "a sufficiently long piece of content for the repository test",
			Status:   status,
			AuthorID: user.ID,
		}
		require.NoError(t, repo.Create(post))
	}

	published, err := repo.FindAll(1, 10, model.StatusPublished)
	assert.NoError(t, err)
	assert.Len(t, published, 2)

	all, err := repo.FindAll(1, 10, "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.Count(model.StatusPublished)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPostRepositoryIncrementViews(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewPostRepository(db)

	post := &model.Post{
		Title:    "Test Post Title",
		Content:  "a sufficiently long piece of content for the repository test",
		Status:   model.StatusDraft,
		AuthorID: user.ID,
	}
	require.NoError(t, repo.Create(post))

	require.NoError(t, repo.IncrementViews(post.ID))
	require.NoError(t, repo.IncrementViews(post.ID))

	found, err := repo.FindByID(post.ID)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 2, found.Views)
}

func TestUserRepositoryDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	user := seedUser(t, db)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	post := &model.Post{
		Title:    "Test Post Title",
		Content:  "a sufficiently long piece of content for the repository test",
		Status:   model.StatusPublished,
		AuthorID: user.ID,
	}
	require.NoError(t, postRepo.Create(post))

	comment := &model.Comment{
		Content:  "great post",
		AuthorID: user.ID,
		PostID:   post.ID,
	}
	require.NoError(t, commentRepo.Create(comment))

	require.NoError(t, userRepo.Delete(user.ID))

	found, err := userRepo.FindByID(user.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	posts, err := postRepo.FindByAuthor(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, posts)

	comments, err := commentRepo.FindByPost(post.ID)
	assert.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepositoryAndPostDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	post := &model.Post{
		Title:    "Test Post Title",
		Content:  "a sufficiently long piece of content for the repository test",
		Status:   model.StatusPublished,
		AuthorID: user.ID,
	}
	require.NoError(t, postRepo.Create(post))

	comment := &model.Comment{
		Content:  "great post",
		AuthorID: user.ID,
		PostID:   post.ID,
	}
	require.NoError(t, commentRepo.Create(comment))

	comments, err := commentRepo.FindByPost(post.ID)
	assert.NoError(t, err)
	assert.Len(t, comments, 1)

	require.NoError(t, postRepo.Delete(post.ID))

	comments, err = commentRepo.FindByPost(post.ID)
	assert.NoError(t, err)
	assert.Empty(t, comments)
}
