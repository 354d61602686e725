package model

import "time"

// Comment belongs to a post and optionally to a parent comment on the same
// post. ParentID is nil for top-level comments; the same-post invariant is
// enforced at creation time, so the tree can never span posts and a comment
// can never become its own ancestor.
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"post_id"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_comment_author;not null" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ParentID  *string   `gorm:"type:varchar(36);index:idx_comment_parent" json:"parent_id"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
