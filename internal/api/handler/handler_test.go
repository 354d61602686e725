package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/api"
	"github.com/d60-Lab/blog-platform/internal/api/handler"
	"github.com/d60-Lab/blog-platform/internal/cache"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/media"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	maker  *token.Maker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Post{}, &model.Comment{},
		&model.PostLike{}, &model.PostDislike{}, &model.CommentReaction{},
		&model.Activity{},
	))

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	postRx := repository.NewPostReactionRepository(db)
	commentRx := repository.NewCommentReactionRepository(db)
	activities := repository.NewActivityRepository(db)

	resolver := media.NewResolver("/media/")
	maker := token.NewMaker("test-secret", time.Hour)
	counts := cache.NewReactionCounts(nil, 0)

	h := handler.New(
		service.NewAuthService(users, maker, resolver),
		service.NewUserService(users, resolver),
		service.NewPostService(db, posts, comments, postRx, users, resolver),
		service.NewCommentService(db, comments, posts, resolver),
		service.NewReactionService(db, postRx, commentRx, counts),
		service.NewActivityService(activities),
	)

	return &testServer{
		router: api.NewRouter(h, maker, "test", 1000, 1000),
		db:     db,
		maker:  maker,
	}
}

func (s *testServer) seedUser(t *testing.T, username string, staff bool) (*model.User, string) {
	t.Helper()
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
	}
	require.NoError(t, s.db.Create(u).Error)
	tok, err := s.maker.Issue(u.ID, staff)
	require.NoError(t, err)
	return u, tok
}

func (s *testServer) seedPost(t *testing.T, authorID string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:       uuid.New().String(),
		Title:    "a post",
		Body:     "body",
		AuthorID: authorID,
		IsActive: true,
	}
	require.NoError(t, s.db.Create(p).Error)
	return p
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAddCommentContract(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", tok,
		gin.H{"body": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	comment, ok := body["comment"].(map[string]any)
	require.True(t, ok, "comment object present")
	require.Equal(t, "hello", comment["body"])
	require.Nil(t, comment["parent_id"])
	author, ok := comment["author"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice", author["username"])
}

func TestAddReplyContract(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", tok, gin.H{"body": "root"})
	require.Equal(t, http.StatusCreated, w.Code)
	rootID := decode(t, w)["comment"].(map[string]any)["id"].(string)

	w = srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", tok,
		gin.H{"body": "thanks", "parent_id": rootID})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	require.Equal(t, rootID, body["comment"].(map[string]any)["parent_id"])
}

func TestAddCommentErrorContract(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/missing/comments", tok, gin.H{"body": "hi"})
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["error"])
	require.Nil(t, body["comment"])
}

func TestAddCommentRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	u, _ := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", "", gin.H{"body": "hi"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleReactionContract(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/reactions/like", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(1), body["likes_count"])
	require.Equal(t, float64(0), body["dislikes_count"])
	require.Equal(t, "like", body["user_action"])

	// Same toggle again: still one like.
	w = srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/reactions/like", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decode(t, w)["likes_count"])
}

func TestToggleReactionBadKind(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/reactions/love", tok, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, decode(t, w)["success"])
}

func TestDeletePostForbidden(t *testing.T) {
	srv := newTestServer(t)
	author, _ := srv.seedUser(t, "alice", false)
	_, otherTok := srv.seedUser(t, "bob", false)
	p := srv.seedPost(t, author.ID)

	w := srv.do(t, http.MethodDelete, "/api/v1/posts/"+p.ID, otherTok, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	var n int64
	require.NoError(t, srv.db.Model(&model.Post{}).Where("id = ?", p.ID).Count(&n).Error)
	require.Equal(t, int64(1), n)
}

func TestStaffDeletesForeignComment(t *testing.T) {
	srv := newTestServer(t)
	author, authorTok := srv.seedUser(t, "alice", false)
	_, staffTok := srv.seedUser(t, "mod", true)
	p := srv.seedPost(t, author.ID)

	w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", authorTok, gin.H{"body": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["comment"].(map[string]any)["id"].(string)

	w = srv.do(t, http.MethodDelete, "/api/v1/comments/"+id, staffTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestActivityFeedOrdering(t *testing.T) {
	srv := newTestServer(t)
	u, tok := srv.seedUser(t, "alice", false)
	p := srv.seedPost(t, u.ID)

	for i := 0; i < 3; i++ {
		w := srv.do(t, http.MethodPost, "/api/v1/posts/"+p.ID+"/comments", tok,
			gin.H{"body": fmt.Sprintf("c%d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := srv.do(t, http.MethodGet, "/api/v1/activities?user_id="+u.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	list := data["list"].([]any)
	require.Len(t, list, 3)
	for _, item := range list {
		require.Equal(t, "comment", item.(map[string]any)["kind"])
	}
}
