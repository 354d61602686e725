package service

import (
	"time"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/pkg/media"
)

// AuthorSummary is the embedded author projection used by comment and post
// views. Avatar is already resolved to a URL.
type AuthorSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// CommentView is the public projection of a comment.
type CommentView struct {
	ID        string        `json:"id"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"created_at"`
	Author    AuthorSummary `json:"author"`
	ParentID  *string       `json:"parent_id"`
}

// PostView is the listing projection of a post.
type PostView struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt"`
	Quotes        string        `json:"quotes,omitempty"`
	Photo         string        `json:"photo,omitempty"`
	Author        AuthorSummary `json:"author"`
	Date          time.Time     `json:"date"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	LikesCount    int64         `json:"likes_count"`
	DislikesCount int64         `json:"dislikes_count"`
	CommentsCount int64         `json:"comments_count"`
}

// PostDetail adds the body and the viewer's own reaction state.
type PostDetail struct {
	PostView
	Body           string `json:"body"`
	ViewerLiked    bool   `json:"viewer_liked"`
	ViewerDisliked bool   `json:"viewer_disliked"`
}

// UserView is the public profile projection.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityView is one feed entry.
type ActivityView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func authorSummary(u *model.User, m *media.Resolver) AuthorSummary {
	if u == nil {
		return AuthorSummary{}
	}
	return AuthorSummary{ID: u.ID, Username: u.Username, Avatar: m.URL(u.Avatar)}
}

func userView(u *model.User, m *media.Resolver) *UserView {
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
		Bio:       u.Bio,
		Avatar:    m.URL(u.Avatar),
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

func commentView(c *model.Comment, m *media.Resolver) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Author:    authorSummary(c.Author, m),
		ParentID:  c.ParentID,
	}
}

func activityView(a *model.Activity) *ActivityView {
	return &ActivityView{
		ID:        a.ID,
		UserID:    a.UserID,
		Kind:      string(a.Kind),
		PostID:    a.PostID,
		CommentID: a.CommentID,
		CreatedAt: a.CreatedAt,
	}
}
