package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-platform/internal/model"
)

// PostReactionRepository manages the two independent post join tables.
// Creates are idempotent: the composite unique index plus ON CONFLICT DO
// NOTHING makes a repeated toggle a no-op, and the returned bool reports
// whether a row was actually inserted.
type PostReactionRepository interface {
	CreateLike(ctx context.Context, postID, userID string) (bool, error)
	CreateDislike(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	CountDislikes(ctx context.Context, postID string) (int64, error)
	HasLike(ctx context.Context, postID, userID string) (bool, error)
	HasDislike(ctx context.Context, postID, userID string) (bool, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type postReactionRepository struct{ db *gorm.DB }

func NewPostReactionRepository(db *gorm.DB) PostReactionRepository {
	return &postReactionRepository{db: db}
}

func (r *postReactionRepository) CreateLike(ctx context.Context, postID, userID string) (bool, error) {
	row := &model.PostLike{ID: uuid.New().String(), PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return res.RowsAffected > 0, res.Error
}

func (r *postReactionRepository) CreateDislike(ctx context.Context, postID, userID string) (bool, error) {
	row := &model.PostDislike{ID: uuid.New().String(), PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return res.RowsAffected > 0, res.Error
}

func (r *postReactionRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *postReactionRepository) CountDislikes(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostDislike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *postReactionRepository) HasLike(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *postReactionRepository) HasDislike(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostDislike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *postReactionRepository) DeleteByPost(ctx context.Context, postID string) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.PostLike{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.PostDislike{}).Error
}

// CommentReactionRepository manages the single-row-per-(comment,user) table.
// Upsert inserts a fresh row or, when the pair already exists (including a
// concurrent insert losing the unique-index race), overwrites the kind. The
// returned bool reports whether a new row was created.
type CommentReactionRepository interface {
	Upsert(ctx context.Context, commentID, userID string, kind model.ReactionKind) (bool, error)
	Get(ctx context.Context, commentID, userID string) (*model.CommentReaction, error)
	CountByKind(ctx context.Context, commentID string, kind model.ReactionKind) (int64, error)
	DeleteByComments(ctx context.Context, commentIDs []string) error
}

type commentReactionRepository struct{ db *gorm.DB }

func NewCommentReactionRepository(db *gorm.DB) CommentReactionRepository {
	return &commentReactionRepository{db: db}
}

func (r *commentReactionRepository) Upsert(ctx context.Context, commentID, userID string, kind model.ReactionKind) (bool, error) {
	row := &model.CommentReaction{
		ID:        uuid.New().String(),
		CommentID: commentID,
		UserID:    userID,
		Kind:      kind,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Lost the insert; retry as an update so the latest kind wins.
	err := r.db.WithContext(ctx).
		Model(&model.CommentReaction{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Update("kind", kind).Error
	return false, err
}

func (r *commentReactionRepository) Get(ctx context.Context, commentID, userID string) (*model.CommentReaction, error) {
	var cr model.CommentReaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&cr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *commentReactionRepository) CountByKind(ctx context.Context, commentID string, kind model.ReactionKind) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentReaction{}).
		Where("comment_id = ? AND kind = ?", commentID, kind).
		Count(&cnt).Error
	return cnt, err
}

func (r *commentReactionRepository) DeleteByComments(ctx context.Context, commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Delete(&model.CommentReaction{}).Error
}
