package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                     // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Jane Doe"`          // Display name
	Email     string    `json:"email" db:"email" example:"jane@campus.edu"` // User's email address (unique)
	Password  string    `json:"-" db:"password"`                            // User's hashed password (excluded from JSON)
	Role      RoleType  `json:"role" db:"role" example:"student"`           // User's role (student or admin)
	Branch    *string   `json:"branch,omitempty" db:"branch" example:"CSE"` // Academic department code (nullable)
	Semester  *int      `json:"semester,omitempty" db:"semester" example:"3"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
