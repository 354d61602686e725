package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

// ActivityRepository is the append side of the activity log. There is no
// update or delete: rows are written once, inside the transaction of the
// mutation they describe.
type ActivityRepository interface {
	Append(ctx context.Context, userID string, kind model.ActivityKind, postID, commentID *string) error
	// List returns recent activity, newest first, optionally filtered by actor.
	List(ctx context.Context, userID *string, offset, limit int) ([]*model.Activity, error)
	ClearPostRef(ctx context.Context, postID string) error
	ClearCommentRefs(ctx context.Context, commentIDs []string) error
}

type activityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepository{db: db} }

func (r *activityRepository) Append(ctx context.Context, userID string, kind model.ActivityKind, postID, commentID *string) error {
	a := &model.Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		PostID:    postID,
		CommentID: commentID,
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepository) List(ctx context.Context, userID *string, offset, limit int) ([]*model.Activity, error) {
	q := r.db.WithContext(ctx).Model(&model.Activity{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var res []*model.Activity
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

// ClearPostRef detaches activity rows from a post that is being deleted.
// The rows themselves stay: the log is append-only.
func (r *activityRepository) ClearPostRef(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("post_id = ?", postID).
		Update("post_id", nil).Error
}

func (r *activityRepository) ClearCommentRefs(ctx context.Context, commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("comment_id IN ?", commentIDs).
		Update("comment_id", nil).Error
}
