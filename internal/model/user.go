package model

import "time"

// User is the persisted user record. The password hash is never exposed in
// JSON output.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     *string    `json:"full_name"`
	Bio          *string    `json:"bio"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// UserCreate is the input shape for creating a user.
type UserCreate struct {
	Username     string
	Email        string
	FullName     *string
	Bio          *string
	PasswordHash string
}

// UserUpdate is the input shape for updating a user. Nil fields are left
// unchanged.
type UserUpdate struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// UserResponse is the output shape for a user. Posts is always present so
// a freshly created user serializes with "posts": [].
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FullName  *string         `json:"full_name"`
	Bio       *string         `json:"bio"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
	Posts     []*PostResponse `json:"posts"`
}

// ToResponse projects a persisted user onto the output shape with the
// given posts attached.
func (u *User) ToResponse(posts []*PostResponse) *UserResponse {
	if posts == nil {
		posts = []*PostResponse{}
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Bio,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Posts:     posts,
	}
}
