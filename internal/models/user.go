// Package models contains data structures for the application's domain models.
package models

import "time"

// Role and activity defaults applied when a user is created.
const (
	DefaultRole = "user"
)

// User represents an account in the Commune application. The password is
// stored only as a bcrypt hash and is never serialized.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"uniqueIndex;not null" json:"username"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Bio             string     `json:"bio,omitempty"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	CoverImageURL   string     `json:"cover_image_url,omitempty"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	Role            string     `gorm:"default:user" json:"role"`
	LastLogin       *time.Time `json:"last_login"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
