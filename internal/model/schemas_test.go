package model

import (
	"blog-backend/internal/schema"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func validUserRaw() schema.Raw {
	return schema.Raw{
		"username": "janedoe",
		"email":    "jane@example.com",
		"password": "s3cret99",
	}
}

func TestUserCreateSchemaHashesTrimmedPassword(t *testing.T) {
	raw := validUserRaw()
	raw["password"] = "  s3cret99  "

	rec, err := UserCreateSchema.Construct(raw)
	assert.NoError(t, err)

	hash := rec["password"].(string)
	assert.NotEqual(t, "s3cret99", hash)
	// The hash must cover the trimmed password, not the padded one.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret99")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("  s3cret99  ")))
}

func TestUserCreateSchemaEmailAlternates(t *testing.T) {
	for _, key := range []string{"email", "mail", "email_address"} {
		raw := schema.Raw{
			"username": "janedoe",
			key:        "Jane@Example.com",
			"password": "s3cret99",
		}
		rec, err := UserCreateSchema.Construct(raw)
		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", rec["email"], "alternate %q", key)
	}
}

func TestUserCreateSchemaNestedFullName(t *testing.T) {
	raw := validUserRaw()
	raw["name"] = map[string]interface{}{"first_name": "marc"}

	rec, err := UserCreateSchema.Construct(raw)
	assert.NoError(t, err)
	assert.Equal(t, "marc", rec["full_name"])

	// Without the nested block the field resolves to absent and nulls out.
	rec, err = UserCreateSchema.Construct(validUserRaw())
	assert.NoError(t, err)
	assert.Nil(t, rec["full_name"])
}

func TestUserCreateSchemaLegacyUsernameKey(t *testing.T) {
	raw := schema.Raw{
		"user_name": "janedoe",
		"email":     "jane@example.com",
		"password":  "s3cret99",
	}
	rec, err := UserCreateSchema.Construct(raw)
	assert.NoError(t, err)
	assert.Equal(t, "janedoe", rec["username"])
}

func TestUserCreateSchemaPasswordEqualsUsername(t *testing.T) {
	raw := schema.Raw{
		"username": "janedoe9",
		"email":    "jane@example.com",
		"password": "janedoe9",
	}
	_, err := UserCreateSchema.Construct(raw)
	var recErr *schema.RecordError
	assert.True(t, errors.As(err, &recErr))
}

func TestUserCreateSchemaRejectsBadEmail(t *testing.T) {
	raw := validUserRaw()
	raw["email"] = "not-an-email"
	_, err := UserCreateSchema.Construct(raw)
	var fieldErr *schema.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "email", fieldErr.Field)
}

func TestPostCreateSchemaDefaults(t *testing.T) {
	raw := schema.Raw{
		"title":     "Test Post Title",
		"content":   strings.Repeat("interesting content ", 5),
		"author_id": "u-1",
	}

	a, err := PostCreateSchema.Construct(raw)
	assert.NoError(t, err)
	assert.Equal(t, string(StatusDraft), a["status"])

	b, err := PostCreateSchema.Construct(raw)
	assert.NoError(t, err)

	// Fresh tag container per record.
	tagsA := a["tags"].([]string)
	tagsB := b["tags"].([]string)
	tagsA = append(tagsA, "mutated")
	assert.Len(t, tagsA, 1)
	assert.Empty(t, tagsB)
}

func TestPostCreateSchemaShortContent(t *testing.T) {
	raw := schema.Raw{
		"title":     "Test Post Title",
		"content":   "too short",
		"author_id": "u-1",
	}
	_, err := PostCreateSchema.Construct(raw)
	var fieldErr *schema.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "content", fieldErr.Field)
	assert.Contains(t, fieldErr.Reason, "at least")
}

func TestPostCreateSchemaUnknownStatus(t *testing.T) {
	raw := schema.Raw{
		"title":     "Test Post Title",
		"content":   strings.Repeat("interesting content ", 5),
		"author_id": "u-1",
		"status":    "retracted",
	}
	_, err := PostCreateSchema.Construct(raw)
	var fieldErr *schema.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "status", fieldErr.Field)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PostStatus
		ok       bool
	}{
		{StatusDraft, StatusPublished, true},
		{StatusDraft, StatusArchived, true},
		{StatusPublished, StatusArchived, true},
		{StatusPublished, StatusPublished, true},
		{StatusPublished, StatusDraft, false},
		{StatusArchived, StatusPublished, false},
		{StatusArchived, StatusDraft, false},
		{StatusArchived, StatusArchived, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUserOutProjectionOmitsPasswordHash(t *testing.T) {
	bio := "writes Go"
	u := &User{
		ID:           "u-1",
		Username:     "janedoe",
		Email:        "jane@example.com",
		Bio:          &bio,
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	plain := UserOutSchema.Project(UserRecord(u))
	assert.NotContains(t, plain, "password_hash")
	assert.Equal(t, "janedoe", plain["username"])

	aliased := UserOutSchema.Project(UserRecord(u), schema.WithAliases())
	assert.NotContains(t, aliased, "password_hash")
	assert.NotContains(t, aliased, "username")
	assert.Equal(t, "janedoe", aliased["userName"])
	assert.Equal(t, true, aliased["isActive"])
}

func TestUserToResponseNeverNilPosts(t *testing.T) {
	u := &User{ID: "u-1", Username: "janedoe"}
	resp := u.ToResponse(nil)
	assert.NotNil(t, resp.Posts)
	assert.Empty(t, resp.Posts)
}
