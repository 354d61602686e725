package model

import "time"

// ReactionKind is "like" or "dislike".
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// PostLike and PostDislike are independent join tables (one row per
// (post, user), enforced by the composite unique index). A user may hold
// both a like and a dislike on the same post; repeated toggles are
// idempotent inserts.
type PostLike struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_post_like_pair,unique;not null" json:"post_id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_post_like_pair,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

type PostDislike struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID    string    `gorm:"type:varchar(36);index:idx_post_dislike_pair,unique;not null" json:"post_id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_post_dislike_pair,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostDislike) TableName() string { return "post_dislikes" }

// CommentReaction keeps a single row per (comment, user); Kind is overwritten
// on re-toggle, so like and dislike are mutually exclusive for comments.
type CommentReaction struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CommentID string       `gorm:"type:varchar(36);index:idx_comment_reaction_pair,unique;not null" json:"comment_id"`
	UserID    string       `gorm:"type:varchar(36);index:idx_comment_reaction_pair,unique;not null" json:"user_id"`
	Kind      ReactionKind `gorm:"type:varchar(8);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (CommentReaction) TableName() string { return "comment_reactions" }
