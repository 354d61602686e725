package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/middleware"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// CreatePost publishes a new post by the authenticated user.
// @Summary Create post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "post payload"
// @Success 201 {object} response.Response{data=service.PostView}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req service.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.posts.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost edits fields of the requester's own post.
// @Summary Update post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param post_id path string true "post id"
// @Param request body service.UpdatePostInput true "fields to change"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req service.UpdatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.posts.Update(c.Request.Context(), c.Param("post_id"), middleware.UserID(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost hard-deletes the requester's own post with all its comments and
// reactions.
// @Summary Delete post
// @Tags posts
// @Security BearerAuth
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("post_id"), middleware.UserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// GetPost returns one post with body, counts, and the viewer's reaction state.
// @Summary Get post
// @Tags posts
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	var viewerID *string
	if id := middleware.UserID(c); id != "" {
		viewerID = &id
	}
	post, err := h.posts.Get(c.Request.Context(), c.Param("post_id"), viewerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, post)
}

// ListPosts pages through active posts, newest first.
// @Summary List posts
// @Tags posts
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	list, total, err := h.posts.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "total": total, "list": list})
}
