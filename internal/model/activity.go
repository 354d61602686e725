package model

import "time"

// ActivityKind enumerates the six tracked mutations.
type ActivityKind string

const (
	ActivityPostLike       ActivityKind = "post_like"
	ActivityPostDislike    ActivityKind = "post_dislike"
	ActivityCommentLike    ActivityKind = "comment_like"
	ActivityCommentDislike ActivityKind = "comment_dislike"
	ActivityComment        ActivityKind = "comment"
	ActivityReply          ActivityKind = "reply"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityPostLike, ActivityPostDislike, ActivityCommentLike,
		ActivityCommentDislike, ActivityComment, ActivityReply:
		return true
	}
	return false
}

// Activity is an append-only record written in the same transaction as the
// mutation it describes. Rows are never updated or deleted; when a referenced
// post or comment is removed the reference is cleared, not the row.
type Activity struct {
	ID        string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string       `gorm:"type:varchar(36);index:idx_activity_user;not null" json:"user_id"`
	Kind      ActivityKind `gorm:"type:varchar(16);index:idx_activity_kind;not null" json:"kind"`
	PostID    *string      `gorm:"type:varchar(36);index" json:"post_id,omitempty"`
	CommentID *string      `gorm:"type:varchar(36);index" json:"comment_id,omitempty"`
	CreatedAt time.Time    `gorm:"index:idx_activity_created" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }
