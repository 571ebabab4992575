package models

import "time"

// Visibility values accepted on a post. Stored but not evaluated against any
// reader identity; there is no viewer-aware filtering.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// ValidVisibility reports whether v is one of the accepted visibility values.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}

// Post represents a post in the Commune application. A post belongs to
// exactly one user; the owner is immutable after creation.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Title      *string   `json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	Visibility string    `gorm:"default:public" json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
