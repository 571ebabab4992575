package models

import "time"

// Comment represents a comment on a post. A nil ParentID marks a top-level
// comment attached directly to the post; a non-nil ParentID marks a reply to
// another comment. The self reference carries no database constraint, so
// deleting a parent comment leaves its children with a dangling ParentID.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentThread is the threaded read-projection over a comment: the flat
// fields plus one materialized layer of direct replies. Deeper levels are
// representable by the same recursive shape but are never prefetched.
type CommentThread struct {
	Comment
	Replies []*CommentThread `json:"replies"`
}
