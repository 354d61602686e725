package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	UpdateBody(ctx context.Context, id, body string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	// ListReplies returns the active direct replies of a comment, oldest first.
	ListReplies(ctx context.Context, parentID string) ([]*model.Comment, error)
	// ListByPost returns the active top-level comments of a post, oldest first.
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	// ChildIDs returns the ids of all direct children of the given comments,
	// active or not. Used for subtree walks.
	ChildIDs(ctx context.Context, parentIDs []string) ([]string, error)
	IDsByPost(ctx context.Context, postID string) ([]string, error)
	CountActiveReplies(ctx context.Context, parentID string) (int64, error)
	CountActiveByPost(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) UpdateBody(ctx context.Context, id, body string) error {
	// Touches body only; created_at stays untouched by design of the column set.
	return r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("body", body).Error
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL AND is_active = ?", postID, true).
		Order("created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) ChildIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *commentRepository) IDsByPost(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *commentRepository) CountActiveReplies(ctx context.Context, parentID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Count(&cnt).Error
	return cnt, err
}

func (r *commentRepository) CountActiveByPost(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&cnt).Error
	return cnt, err
}
