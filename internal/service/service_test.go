package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/cache"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/media"
)

type testEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	posts     repository.PostRepository
	comments  repository.CommentRepository
	postRx    repository.PostReactionRepository
	commentRx repository.CommentReactionRepository
	activity  repository.ActivityRepository

	postSvc     PostService
	commentSvc  CommentService
	reactionSvc ReactionService
	activitySvc ActivityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{},
		&model.PostLike{}, &model.PostDislike{}, &model.CommentReaction{},
		&model.Activity{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		posts:     repository.NewPostRepository(db),
		comments:  repository.NewCommentRepository(db),
		postRx:    repository.NewPostReactionRepository(db),
		commentRx: repository.NewCommentReactionRepository(db),
		activity:  repository.NewActivityRepository(db),
	}
	resolver := media.NewResolver("/media/")
	env.postSvc = NewPostService(db, env.posts, env.comments, env.postRx, env.users, resolver)
	env.commentSvc = NewCommentService(db, env.comments, env.posts, resolver)
	env.reactionSvc = NewReactionService(db, env.postRx, env.commentRx, cache.NewReactionCounts(nil, 0))
	env.activitySvc = NewActivityService(env.activity)
	return env
}

func (e *testEnv) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "x",
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (e *testEnv) seedPost(t *testing.T, authorID, title string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:       uuid.New().String(),
		Title:    title,
		Body:     "body of " + title,
		AuthorID: authorID,
		IsActive: true,
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func (e *testEnv) seedComment(t *testing.T, postID, authorID, body string, parentID *string) *model.Comment {
	t.Helper()
	c := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
		ParentID: parentID,
		IsActive: true,
	}
	if err := e.db.Create(c).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

func (e *testEnv) activityRows(t *testing.T, userID string) []*model.Activity {
	t.Helper()
	rows, err := e.activity.List(context.Background(), &userID, 0, 100)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	return rows
}
