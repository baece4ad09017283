package dto

import "time"

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Branch   *string `json:"branch,omitempty" binding:"omitempty,max=20"`
	Semester *int    `json:"semester,omitempty" binding:"omitempty,gte=1,lte=8"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are unchanged;
// a pointer to the zero value overwrites.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Branch    *string `json:"branch,omitempty" binding:"omitempty,max=20"`
	Semester  *int    `json:"semester,omitempty" binding:"omitempty,gte=1,lte=8"`
	AvatarURL *string `json:"avatarUrl,omitempty" binding:"omitempty,url"`
}

// UserProfile is the public view of a user. It never carries the password.
type UserProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Branch    *string   `json:"branch,omitempty"`
	Semester  *int      `json:"semester,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeResponse is the current user's profile with owned/bookmarked counts.
type MeResponse struct {
	UserProfile
	NoteCount     int64 `json:"noteCount"`
	BookmarkCount int64 `json:"bookmarkCount"`
}

// AuthResponse carries the identity token and the public profile.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"` // seconds
	User      UserProfile `json:"user"`
}
