package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-platform/internal/model"
)

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, "alice")

	_, err := env.postSvc.Create(context.Background(), u.ID, CreatePostInput{Title: "  ", Body: "b"})
	assert.ErrorIs(t, err, ErrValidation)

	view, err := env.postSvc.Create(context.Background(), u.ID, CreatePostInput{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.Equal(t, u.ID, view.Author.ID)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "alice")
	v := env.seedUser(t, "bob")
	p := env.seedPost(t, u.ID, "original")

	title := "renamed"
	_, err := env.postSvc.Update(ctx, p.ID, v.ID, UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	view, err := env.postSvc.Update(ctx, p.ID, u.ID, UpdatePostInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", view.Title)
}

func TestDeletePostForbiddenLeavesPostIntact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "alice")
	v := env.seedUser(t, "bob")
	p := env.seedPost(t, u.ID, "post")

	err := env.postSvc.Delete(ctx, p.ID, v.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := env.posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "post survives a forbidden delete")
}

func TestDeletePostCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "alice")
	v := env.seedUser(t, "bob")
	p := env.seedPost(t, u.ID, "post")

	cv, err := env.commentSvc.Add(ctx, p.ID, v.ID, "nice", nil)
	require.NoError(t, err)
	_, err = env.reactionSvc.TogglePost(ctx, p.ID, v.ID, model.ReactionLike)
	require.NoError(t, err)
	_, err = env.reactionSvc.ToggleComment(ctx, cv.ID, u.ID, model.ReactionLike)
	require.NoError(t, err)

	require.NoError(t, env.postSvc.Delete(ctx, p.ID, u.ID))

	for _, tc := range []struct {
		name  string
		model any
	}{
		{"posts", &model.Post{}},
		{"comments", &model.Comment{}},
		{"post_likes", &model.PostLike{}},
		{"comment_reactions", &model.CommentReaction{}},
	} {
		var n int64
		require.NoError(t, env.db.Model(tc.model).Count(&n).Error)
		assert.Zero(t, n, tc.name)
	}

	// Activity survives with both references detached.
	var acts []*model.Activity
	require.NoError(t, env.db.Find(&acts).Error)
	require.Len(t, acts, 3)
	for _, a := range acts {
		assert.Nil(t, a.PostID)
		assert.Nil(t, a.CommentID)
	}
}

func TestGetPostViewerState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "alice")
	v := env.seedUser(t, "bob")
	p := env.seedPost(t, u.ID, "post")

	_, err := env.reactionSvc.TogglePost(ctx, p.ID, v.ID, model.ReactionLike)
	require.NoError(t, err)

	anon, err := env.postSvc.Get(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.False(t, anon.ViewerLiked)
	assert.Equal(t, int64(1), anon.LikesCount)

	seen, err := env.postSvc.Get(ctx, p.ID, &v.ID)
	require.NoError(t, err)
	assert.True(t, seen.ViewerLiked)
	assert.False(t, seen.ViewerDisliked)
}

func TestListPostsSkipsInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "alice")
	env.seedPost(t, u.ID, "visible")
	hidden := env.seedPost(t, u.ID, "hidden")
	require.NoError(t, env.db.Model(&model.Post{}).Where("id = ?", hidden.ID).Update("is_active", false).Error)

	list, total, err := env.postSvc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].Title)
}
