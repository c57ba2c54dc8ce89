package model

import (
	"blog-backend/internal/schema"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Field length limits shared by the schemas and binding tags.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
	TitleMinLen    = 5
	TitleMaxLen    = 100
	ContentMinLen  = 50
	CommentMaxLen  = 1000
	BioMaxLen      = 500
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// hashPassword is the post stage that replaces a plaintext password with
// its bcrypt hash.
func hashPassword(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", v)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return string(hash), nil
}

// UserCreateSchema validates the payload for creating a user. The email is
// accepted under "email", "mail" or "email_address"; the full name may also
// arrive nested as {"name": {"first_name": ...}}. The password is trimmed,
// length-checked and stored only as a bcrypt hash.
var UserCreateSchema = &schema.Schema{
	Name: "user_create",
	Fields: []schema.Field{
		{
			Name:   "username",
			Coerce: schema.String,
			Pre:    []schema.StageFunc{schema.TrimSpace},
			Post:   []schema.StageFunc{schema.MinLen(UsernameMinLen), schema.MaxLen(UsernameMaxLen)},
		},
		{
			Name:    "email",
			Aliases: []string{"mail", "email_address"},
			Coerce:  schema.String,
			Pre:     []schema.StageFunc{schema.TrimSpace, schema.Lower},
			Post:    []schema.StageFunc{schema.Match(emailRe, "is not a valid email address")},
		},
		{
			Name:     "full_name",
			Aliases:  []string{"fullName"},
			Path:     []string{"name", "first_name"},
			Coerce:   schema.String,
			Nullable: true,
		},
		{
			Name:     "bio",
			Coerce:   schema.String,
			Post:     []schema.StageFunc{schema.MaxLen(BioMaxLen)},
			Nullable: true,
		},
		{
			Name:   "password",
			Coerce: schema.String,
			Pre:    []schema.StageFunc{schema.TrimSpace},
			Post:   []schema.StageFunc{schema.MinLen(PasswordMinLen), hashPassword},
		},
	},
	Before: []schema.BeforeCheck{
		func(raw schema.Raw) error {
			// Legacy clients send user_name; fold it in before field
			// processing.
			if _, ok := raw["username"]; !ok {
				if v, ok := raw["user_name"]; ok {
					raw["username"] = v
				}
			}
			// Cross-field check runs here so it sees the plaintext
			// password, not the hash.
			if p, ok := raw["password"].(string); ok {
				if u, ok := raw["username"].(string); ok && p == u {
					return errors.New("password must differ from username")
				}
			}
			return nil
		},
	},
}

// UserCreateFromRecord converts a validated record into the typed input
// shape.
func UserCreateFromRecord(rec schema.Record) *UserCreate {
	uc := &UserCreate{
		Username:     rec["username"].(string),
		Email:        rec["email"].(string),
		PasswordHash: rec["password"].(string),
	}
	if v, ok := rec["full_name"].(string); ok {
		uc.FullName = &v
	}
	if v, ok := rec["bio"].(string); ok {
		uc.Bio = &v
	}
	return uc
}

// PostCreateSchema validates the payload for creating a post. Status
// defaults to draft; tags default to a fresh empty list per record.
var PostCreateSchema = &schema.Schema{
	Name: "post_create",
	Fields: []schema.Field{
		{
			Name:   "title",
			Coerce: schema.String,
			Pre:    []schema.StageFunc{schema.TrimSpace},
			Post:   []schema.StageFunc{schema.MinLen(TitleMinLen), schema.MaxLen(TitleMaxLen)},
		},
		{
			Name:   "content",
			Coerce: schema.String,
			Post:   []schema.StageFunc{schema.MinLen(ContentMinLen)},
		},
		{
			Name:    "status",
			Coerce:  schema.String,
			Default: string(StatusDraft),
			Post: []schema.StageFunc{
				schema.OneOf(string(StatusDraft), string(StatusPublished), string(StatusArchived)),
			},
		},
		{
			Name:        "tags",
			Coerce:      schema.StringSlice,
			DefaultFunc: func() interface{} { return []string{} },
		},
		{
			Name:   "author_id",
			Coerce: schema.String,
		},
	},
}

// PostCreateFromRecord converts a validated record into the typed input
// shape.
func PostCreateFromRecord(rec schema.Record) *PostCreate {
	return &PostCreate{
		Title:    rec["title"].(string),
		Content:  rec["content"].(string),
		Status:   PostStatus(rec["status"].(string)),
		Tags:     rec["tags"].([]string),
		AuthorID: rec["author_id"].(string),
	}
}

// CommentCreateSchema validates the payload for creating a comment.
var CommentCreateSchema = &schema.Schema{
	Name: "comment_create",
	Fields: []schema.Field{
		{
			Name:   "content",
			Coerce: schema.String,
			Pre:    []schema.StageFunc{schema.TrimSpace},
			Post:   []schema.StageFunc{schema.MinLen(1), schema.MaxLen(CommentMaxLen)},
		},
	},
}

// CommentCreateFromRecord converts a validated record into the typed input
// shape. The author is taken from the authenticated request, not the body.
func CommentCreateFromRecord(rec schema.Record, authorID string) *CommentCreate {
	return &CommentCreate{
		Content:  rec["content"].(string),
		AuthorID: authorID,
	}
}

// UserRecord flattens a persisted user into a record for projection.
// The password hash is included; the output schema leaves it behind.
func UserRecord(u *User) schema.Record {
	rec := schema.Record{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"is_active":     u.IsActive,
		"password_hash": u.PasswordHash,
		"created_at":    u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.FullName != nil {
		rec["full_name"] = *u.FullName
	}
	if u.Bio != nil {
		rec["bio"] = *u.Bio
	}
	if u.UpdatedAt != nil {
		rec["updated_at"] = u.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

// UserOutSchema declares the alias-based output projection for a user
// record: camelCase names, and never the password hash.
var UserOutSchema = &schema.Schema{
	Name: "user_out",
	Fields: []schema.Field{
		{Name: "id", Coerce: schema.String},
		{Name: "username", Coerce: schema.String, OutName: "userName"},
		{Name: "email", Coerce: schema.String},
		{Name: "full_name", Coerce: schema.String, OutName: "fullName"},
		{Name: "bio", Coerce: schema.String},
		{Name: "is_active", Coerce: schema.Bool, OutName: "isActive"},
		{Name: "created_at", Coerce: schema.String, OutName: "createdAt"},
		{Name: "updated_at", Coerce: schema.String, OutName: "updatedAt"},
	},
}
