package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
)

// DeletedComment reports what a cascade delete removed so callers can
// refresh counts.
type DeletedComment struct {
	ID      string `json:"id"`
	PostID  string `json:"post_id"`
	Removed int64  `json:"removed"`
}

type CommentService interface {
	Add(ctx context.Context, postID, authorID, body string, parentID *string) (*CommentView, error)
	Edit(ctx context.Context, commentID, requesterID, body string) (*CommentView, error)
	Delete(ctx context.Context, commentID, requesterID string, privileged bool) (*DeletedComment, error)
	ListReplies(ctx context.Context, commentID string) ([]*CommentView, error)
	ListByPost(ctx context.Context, postID string) ([]*CommentView, error)
	CountActiveReplies(ctx context.Context, commentID string) (int64, error)
	CountActiveComments(ctx context.Context, postID string) (int64, error)
	Depth(ctx context.Context, commentID string) (int, error)
}

type commentService struct {
	db       *gorm.DB
	comments repository.CommentRepository
	posts    repository.PostRepository
	media    *media.Resolver
}

func NewCommentService(db *gorm.DB, comments repository.CommentRepository, posts repository.PostRepository, m *media.Resolver) CommentService {
	return &commentService{db: db, comments: comments, posts: posts, media: m}
}

// Add creates a comment (or a reply when parentID is set) and appends the
// matching activity record in the same transaction, so the log can never
// drift from the comment store.
func (s *commentService) Add(ctx context.Context, postID, authorID, body string, parentID *string) (*CommentView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrValidation)
	}

	var created *model.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repository.NewPostRepository(tx)
		comments := repository.NewCommentRepository(tx)
		users := repository.NewUserRepository(tx)
		activities := repository.NewActivityRepository(tx)

		post, err := posts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		author, err := users.GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return fmt.Errorf("%w: user %s", ErrNotFound, authorID)
		}

		kind := model.ActivityComment
		if parentID != nil {
			parent, err := comments.GetByID(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent == nil || parent.PostID != postID {
				// A parent on another post is as good as absent.
				return fmt.Errorf("%w: parent comment %s", ErrNotFound, *parentID)
			}
			kind = model.ActivityReply
		}

		c := &model.Comment{
			ID:       uuid.New().String(),
			PostID:   postID,
			AuthorID: authorID,
			Body:     body,
			ParentID: parentID,
			IsActive: true,
		}
		if err := comments.Create(ctx, c); err != nil {
			return err
		}
		if err := activities.Append(ctx, authorID, kind, &postID, &c.ID); err != nil {
			return err
		}
		c.Author = author
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commentView(created, s.media), nil
}

// Edit replaces the body in place. Edits are not activity-worthy and never
// touch the creation timestamp.
func (s *commentService) Edit(ctx context.Context, commentID, requesterID, body string) (*CommentView, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is empty", ErrValidation)
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	if c.AuthorID != requesterID {
		return nil, fmt.Errorf("%w: only the author may edit a comment", ErrForbidden)
	}
	if err := s.comments.UpdateBody(ctx, commentID, body); err != nil {
		return nil, err
	}
	c.Body = body
	return commentView(c, s.media), nil
}

// Delete hard-removes a comment and its whole reply subtree, plus the
// subtree's reactions. Activity rows survive with their comment reference
// cleared.
func (s *commentService) Delete(ctx context.Context, commentID, requesterID string, privileged bool) (*DeletedComment, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	if c.AuthorID != requesterID && !privileged {
		return nil, fmt.Errorf("%w: only the author or staff may delete a comment", ErrForbidden)
	}

	var removed int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repository.NewCommentRepository(tx)
		reactions := repository.NewCommentReactionRepository(tx)
		activities := repository.NewActivityRepository(tx)

		ids, err := subtreeIDs(ctx, comments, commentID)
		if err != nil {
			return err
		}
		if err := reactions.DeleteByComments(ctx, ids); err != nil {
			return err
		}
		if err := activities.ClearCommentRefs(ctx, ids); err != nil {
			return err
		}
		removed, err = comments.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeletedComment{ID: commentID, PostID: c.PostID, Removed: removed}, nil
}

// subtreeIDs collects a comment and all its descendants with an iterative
// frontier walk over parent_id.
func subtreeIDs(ctx context.Context, comments repository.CommentRepository, rootID string) ([]string, error) {
	all := []string{rootID}
	frontier := []string{rootID}
	for len(frontier) > 0 {
		children, err := comments.ChildIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}

func (s *commentService) ListReplies(ctx context.Context, commentID string) ([]*CommentView, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	replies, err := s.comments.ListReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}
	out := make([]*CommentView, len(replies))
	for i, r := range replies {
		out[i] = commentView(r, s.media)
	}
	return out, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID string) ([]*CommentView, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	list, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	out := make([]*CommentView, len(list))
	for i, c := range list {
		out[i] = commentView(c, s.media)
	}
	return out, nil
}

func (s *commentService) CountActiveReplies(ctx context.Context, commentID string) (int64, error) {
	return s.comments.CountActiveReplies(ctx, commentID)
}

func (s *commentService) CountActiveComments(ctx context.Context, postID string) (int64, error) {
	return s.comments.CountActiveByPost(ctx, postID)
}

// Depth walks parent links to the root iteratively; 0 means top-level.
// Creation-time checks guarantee the walk is acyclic.
func (s *commentService) Depth(ctx context.Context, commentID string) (int, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, fmt.Errorf("%w: comment %s", ErrNotFound, commentID)
	}
	depth := 0
	for c.ParentID != nil {
		c, err = s.comments.GetByID(ctx, *c.ParentID)
		if err != nil {
			return 0, err
		}
		if c == nil {
			break
		}
		depth++
	}
	return depth, nil
}
