package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/cache"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
)

// SubjectType selects which reaction policy applies.
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

// ReactionResult is the toggle response: fresh counts plus the action taken.
type ReactionResult struct {
	Likes      int64  `json:"likes_count"`
	Dislikes   int64  `json:"dislikes_count"`
	UserAction string `json:"user_action"`
}

// ReactionService toggles like/dislike state.
//
// Posts follow the dual-table policy: like and dislike rows are independent,
// repeated toggles are idempotent inserts, and a user may hold both at once.
// Comments follow the single-row policy: one row per (comment, user) whose
// kind is overwritten, making like and dislike mutually exclusive.
//
// An activity record is appended only when a reaction row is genuinely
// created; idempotent re-toggles and kind flips record nothing.
type ReactionService interface {
	TogglePost(ctx context.Context, postID, userID string, kind model.ReactionKind) (*ReactionResult, error)
	ToggleComment(ctx context.Context, commentID, userID string, kind model.ReactionKind) (*ReactionResult, error)
	Counts(ctx context.Context, subject SubjectType, subjectID string) (cache.Counts, error)
	HasUserReacted(ctx context.Context, subject SubjectType, subjectID, userID string, kind model.ReactionKind) (bool, error)
}

type reactionService struct {
	db               *gorm.DB
	postReactions    repository.PostReactionRepository
	commentReactions repository.CommentReactionRepository
	counts           *cache.ReactionCounts
}

func NewReactionService(
	db *gorm.DB,
	postReactions repository.PostReactionRepository,
	commentReactions repository.CommentReactionRepository,
	counts *cache.ReactionCounts,
) ReactionService {
	return &reactionService{
		db:               db,
		postReactions:    postReactions,
		commentReactions: commentReactions,
		counts:           counts,
	}
}

func (s *reactionService) TogglePost(ctx context.Context, postID, userID string, kind model.ReactionKind) (*ReactionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown reaction kind %q", ErrValidation, kind)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repository.NewPostRepository(tx)
		reactions := repository.NewPostReactionRepository(tx)
		activities := repository.NewActivityRepository(tx)

		post, err := posts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}

		var created bool
		activityKind := model.ActivityPostLike
		if kind == model.ReactionLike {
			created, err = reactions.CreateLike(ctx, postID, userID)
		} else {
			created, err = reactions.CreateDislike(ctx, postID, userID)
			activityKind = model.ActivityPostDislike
		}
		if err != nil {
			return err
		}
		if created {
			return activities.Append(ctx, userID, activityKind, &postID, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.counts.Invalidate(ctx, string(SubjectPost), postID)
	counts, err := s.Counts(ctx, SubjectPost, postID)
	if err != nil {
		return nil, err
	}
	return &ReactionResult{Likes: counts.Likes, Dislikes: counts.Dislikes, UserAction: string(kind)}, nil
}

func (s *reactionService) ToggleComment(ctx context.Context, commentID, userID string, kind model.ReactionKind) (*ReactionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown reaction kind %q", ErrValidation, kind)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repository.NewCommentRepository(tx)
		reactions := repository.NewCommentReactionRepository(tx)
		activities := repository.NewActivityRepository(tx)

		comment, err := comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment == nil {
			return fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
		}

		created, err := reactions.Upsert(ctx, commentID, userID, kind)
		if err != nil {
			return err
		}
		if created {
			activityKind := model.ActivityCommentLike
			if kind == model.ReactionDislike {
				activityKind = model.ActivityCommentDislike
			}
			return activities.Append(ctx, userID, activityKind, &comment.PostID, &commentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.counts.Invalidate(ctx, string(SubjectComment), commentID)
	counts, err := s.Counts(ctx, SubjectComment, commentID)
	if err != nil {
		return nil, err
	}
	return &ReactionResult{Likes: counts.Likes, Dislikes: counts.Dislikes, UserAction: string(kind)}, nil
}

// Counts serves cached tallies when possible and counts live otherwise.
func (s *reactionService) Counts(ctx context.Context, subject SubjectType, subjectID string) (cache.Counts, error) {
	if cached, ok := s.counts.Get(ctx, string(subject), subjectID); ok {
		return cached, nil
	}

	var out cache.Counts
	var err error
	switch subject {
	case SubjectPost:
		if out.Likes, err = s.postReactions.CountLikes(ctx, subjectID); err != nil {
			return out, err
		}
		if out.Dislikes, err = s.postReactions.CountDislikes(ctx, subjectID); err != nil {
			return out, err
		}
	case SubjectComment:
		if out.Likes, err = s.commentReactions.CountByKind(ctx, subjectID, model.ReactionLike); err != nil {
			return out, err
		}
		if out.Dislikes, err = s.commentReactions.CountByKind(ctx, subjectID, model.ReactionDislike); err != nil {
			return out, err
		}
	default:
		return out, fmt.Errorf("%w: unknown subject type %q", ErrValidation, subject)
	}

	s.counts.Set(ctx, string(subject), subjectID, out)
	return out, nil
}

func (s *reactionService) HasUserReacted(ctx context.Context, subject SubjectType, subjectID, userID string, kind model.ReactionKind) (bool, error) {
	switch subject {
	case SubjectPost:
		if kind == model.ReactionLike {
			return s.postReactions.HasLike(ctx, subjectID, userID)
		}
		return s.postReactions.HasDislike(ctx, subjectID, userID)
	case SubjectComment:
		row, err := s.commentReactions.Get(ctx, subjectID, userID)
		if err != nil {
			return false, err
		}
		return row != nil && row.Kind == kind, nil
	}
	return false, fmt.Errorf("%w: unknown subject type %q", ErrValidation, subject)
}
