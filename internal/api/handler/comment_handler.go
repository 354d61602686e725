package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/middleware"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

type addCommentRequest struct {
	Body     string  `json:"body" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type editCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// commentEnvelope is the wire contract for comment creation, kept separate
// from the common envelope because clients render it inline.
type commentEnvelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
	Comment *service.CommentView `json:"comment,omitempty"`
}

func commentFailure(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	}
	c.JSON(status, commentEnvelope{Success: false, Error: msg})
}

// AddComment creates a comment, or a reply when parent_id is set.
// @Summary Add comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param post_id path string true "post id"
// @Param request body addCommentRequest true "comment payload"
// @Success 201 {object} commentEnvelope
// @Failure 400 {object} commentEnvelope
// @Failure 404 {object} commentEnvelope
// @Router /api/v1/posts/{post_id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, commentEnvelope{Success: false, Error: err.Error()})
		return
	}
	comment, err := h.comments.Add(c.Request.Context(), c.Param("post_id"), middleware.UserID(c), req.Body, req.ParentID)
	if err != nil {
		commentFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentEnvelope{Success: true, Message: "comment created", Comment: comment})
}

// EditComment replaces the body of the requester's own comment.
// @Summary Edit comment
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param comment_id path string true "comment id"
// @Param request body editCommentRequest true "new body"
// @Success 200 {object} response.Response{data=service.CommentView}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id} [patch]
func (h *Handler) EditComment(c *gin.Context) {
	var req editCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.comments.Edit(c.Request.Context(), c.Param("comment_id"), middleware.UserID(c), req.Body)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment removes a comment and its reply subtree. Authors may delete
// their own comments; staff may delete any.
// @Summary Delete comment
// @Tags comments
// @Security BearerAuth
// @Param comment_id path string true "comment id"
// @Success 200 {object} response.Response{data=service.DeletedComment}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	deleted, err := h.comments.Delete(c.Request.Context(), c.Param("comment_id"), middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, deleted)
}

// ListComments returns a post's active top-level comments, oldest first.
// @Summary List comments for a post
// @Tags comments
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	list, err := h.comments.ListByPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, list)
}

// ListReplies returns a comment's active direct replies, oldest first.
// @Summary List replies
// @Tags comments
// @Param comment_id path string true "comment id"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id}/replies [get]
func (h *Handler) ListReplies(c *gin.Context) {
	list, err := h.comments.ListReplies(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, list)
}
