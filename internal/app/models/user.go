package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          string     `json:"id" db:"id" example:"2e0a9b54-8c6d-4f11-aa4e-77b3c9d01234"` // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@university.edu"`            // User's email address
	Password    string     `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`                                 // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`                                 // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                  // Timestamp of the last login (nullable)
}

// Profile defines the public profile model based on the 'profiles' table.
// AvatarURL is stored and displayed verbatim; reachability is never checked.
type Profile struct {
	ID        string    `json:"id" db:"id"`                               // Same as the owning user's ID
	Username  string    `json:"username" db:"username" example:"janedoe"` // Unique handle
	FullName  *string   `json:"fullName,omitempty" db:"full_name"`        // Nullable
	Bio       *string   `json:"bio,omitempty" db:"bio"`                   // Nullable
	Education *string   `json:"education,omitempty" db:"education"`       // Nullable
	Skills    *string   `json:"skills,omitempty" db:"skills"`             // Nullable free text
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`      // Nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RefreshToken defines the refresh token model based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
