package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
)

// CreatePostInput carries the author-editable fields. The author id always
// comes from the authenticated session, never from the payload.
type CreatePostInput struct {
	Title   string     `json:"title" binding:"required,max=255"`
	Excerpt string     `json:"excerpt"`
	Body    string     `json:"body" binding:"required"`
	Quotes  string     `json:"quotes" binding:"max=255"`
	Photo   string     `json:"photo"`
	Date    *time.Time `json:"date"`
}

// UpdatePostInput uses pointers so absent fields stay untouched.
type UpdatePostInput struct {
	Title    *string    `json:"title" binding:"omitempty,max=255"`
	Excerpt  *string    `json:"excerpt"`
	Body     *string    `json:"body"`
	Quotes   *string    `json:"quotes" binding:"omitempty,max=255"`
	Photo    *string    `json:"photo"`
	Date     *time.Time `json:"date"`
	IsActive *bool      `json:"is_active"`
}

type PostService interface {
	Create(ctx context.Context, authorID string, in CreatePostInput) (*PostView, error)
	Update(ctx context.Context, postID, requesterID string, in UpdatePostInput) (*PostView, error)
	Delete(ctx context.Context, postID, requesterID string) error
	Get(ctx context.Context, postID string, viewerID *string) (*PostDetail, error)
	List(ctx context.Context, page, pageSize int) ([]*PostView, int64, error)
}

type postService struct {
	db            *gorm.DB
	posts         repository.PostRepository
	comments      repository.CommentRepository
	postReactions repository.PostReactionRepository
	users         repository.UserRepository
	media         *media.Resolver
}

func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	postReactions repository.PostReactionRepository,
	users repository.UserRepository,
	m *media.Resolver,
) PostService {
	return &postService{
		db:            db,
		posts:         posts,
		comments:      comments,
		postReactions: postReactions,
		users:         users,
		media:         m,
	}
}

func (s *postService) Create(ctx context.Context, authorID string, in CreatePostInput) (*PostView, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return nil, fmt.Errorf("%w: title and body are required", ErrValidation)
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, authorID)
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	p := &model.Post{
		ID:       uuid.New().String(),
		Title:    title,
		Excerpt:  in.Excerpt,
		Body:     body,
		Quotes:   in.Quotes,
		Photo:    in.Photo,
		AuthorID: authorID,
		Date:     date,
		IsActive: true,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Author = author
	return s.view(ctx, p)
}

func (s *postService) Update(ctx context.Context, postID, requesterID string, in UpdatePostInput) (*PostView, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	if p.AuthorID != requesterID {
		return nil, fmt.Errorf("%w: only the author may update a post", ErrForbidden)
	}

	fields := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title is empty", ErrValidation)
		}
		fields["title"] = t
	}
	if in.Excerpt != nil {
		fields["excerpt"] = *in.Excerpt
	}
	if in.Body != nil {
		b := strings.TrimSpace(*in.Body)
		if b == "" {
			return nil, fmt.Errorf("%w: body is empty", ErrValidation)
		}
		fields["body"] = b
	}
	if in.Quotes != nil {
		fields["quotes"] = *in.Quotes
	}
	if in.Photo != nil {
		fields["photo"] = *in.Photo
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) > 0 {
		if err := s.posts.Update(ctx, postID, fields); err != nil {
			return nil, err
		}
	}

	p, err = s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

// Delete hard-removes the post with everything hanging off it: comments,
// comment reactions, and both post reaction tables. Activity rows stay but
// lose their references.
func (s *postService) Delete(ctx context.Context, postID, requesterID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	if p.AuthorID != requesterID {
		return fmt.Errorf("%w: only the author may delete a post", ErrForbidden)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repository.NewPostRepository(tx)
		comments := repository.NewCommentRepository(tx)
		commentReactions := repository.NewCommentReactionRepository(tx)
		postReactions := repository.NewPostReactionRepository(tx)
		activities := repository.NewActivityRepository(tx)

		commentIDs, err := comments.IDsByPost(ctx, postID)
		if err != nil {
			return err
		}
		if err := commentReactions.DeleteByComments(ctx, commentIDs); err != nil {
			return err
		}
		if err := activities.ClearCommentRefs(ctx, commentIDs); err != nil {
			return err
		}
		if _, err := comments.DeleteByIDs(ctx, commentIDs); err != nil {
			return err
		}
		if err := postReactions.DeleteByPost(ctx, postID); err != nil {
			return err
		}
		if err := activities.ClearPostRef(ctx, postID); err != nil {
			return err
		}
		return posts.Delete(ctx, postID)
	})
}

func (s *postService) Get(ctx context.Context, postID string, viewerID *string) (*PostDetail, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: post %s", ErrNotFound, postID)
	}
	view, err := s.view(ctx, p)
	if err != nil {
		return nil, err
	}
	detail := &PostDetail{PostView: *view, Body: p.Body}
	if viewerID != nil {
		if detail.ViewerLiked, err = s.postReactions.HasLike(ctx, postID, *viewerID); err != nil {
			return nil, err
		}
		if detail.ViewerDisliked, err = s.postReactions.HasDislike(ctx, postID, *viewerID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *postService) List(ctx context.Context, page, pageSize int) ([]*PostView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	total, err := s.posts.CountActive(ctx)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.posts.ListActive(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*PostView, 0, len(list))
	for _, p := range list {
		v, err := s.view(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, nil
}

func (s *postService) view(ctx context.Context, p *model.Post) (*PostView, error) {
	v := &PostView{
		ID:        p.ID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Quotes:    p.Quotes,
		Photo:     s.media.URL(p.Photo),
		Author:    authorSummary(p.Author, s.media),
		Date:      p.Date,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	var err error
	if v.LikesCount, err = s.postReactions.CountLikes(ctx, p.ID); err != nil {
		return nil, err
	}
	if v.DislikesCount, err = s.postReactions.CountDislikes(ctx, p.ID); err != nil {
		return nil, err
	}
	if v.CommentsCount, err = s.comments.CountActiveByPost(ctx, p.ID); err != nil {
		return nil, err
	}
	return v, nil
}
