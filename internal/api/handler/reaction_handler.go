package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-platform/internal/middleware"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/logger"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// toggleEnvelope is the wire contract for reaction toggles.
type toggleEnvelope struct {
	Success  bool   `json:"success"`
	Likes    int64  `json:"likes_count"`
	Dislikes int64  `json:"dislikes_count"`
	Action   string `json:"user_action,omitempty"`
	Error    string `json:"error,omitempty"`
}

func toggleFailure(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	default:
		logger.Error("reaction toggle failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, toggleEnvelope{Success: false, Error: msg})
}

// TogglePostReaction records a like or dislike on a post. Likes and dislikes
// are independent; repeating the same toggle is a no-op.
// @Summary Toggle post reaction
// @Tags reactions
// @Security BearerAuth
// @Param post_id path string true "post id"
// @Param kind path string true "like or dislike" Enums(like, dislike)
// @Success 200 {object} toggleEnvelope
// @Failure 400 {object} toggleEnvelope
// @Failure 404 {object} toggleEnvelope
// @Router /api/v1/posts/{post_id}/reactions/{kind} [post]
func (h *Handler) TogglePostReaction(c *gin.Context) {
	result, err := h.reactions.TogglePost(
		c.Request.Context(),
		c.Param("post_id"),
		middleware.UserID(c),
		model.ReactionKind(c.Param("kind")),
	)
	if err != nil {
		toggleFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, toggleEnvelope{
		Success:  true,
		Likes:    result.Likes,
		Dislikes: result.Dislikes,
		Action:   result.UserAction,
	})
}

// ToggleCommentReaction records a like or dislike on a comment. A user holds
// at most one reaction per comment; toggling the other kind flips it.
// @Summary Toggle comment reaction
// @Tags reactions
// @Security BearerAuth
// @Param comment_id path string true "comment id"
// @Param kind path string true "like or dislike" Enums(like, dislike)
// @Success 200 {object} toggleEnvelope
// @Failure 400 {object} toggleEnvelope
// @Failure 404 {object} toggleEnvelope
// @Router /api/v1/comments/{comment_id}/reactions/{kind} [post]
func (h *Handler) ToggleCommentReaction(c *gin.Context) {
	result, err := h.reactions.ToggleComment(
		c.Request.Context(),
		c.Param("comment_id"),
		middleware.UserID(c),
		model.ReactionKind(c.Param("kind")),
	)
	if err != nil {
		toggleFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, toggleEnvelope{
		Success:  true,
		Likes:    result.Likes,
		Dislikes: result.Dislikes,
		Action:   result.UserAction,
	})
}

// GetPostReactionCounts returns like/dislike tallies for a post.
// @Summary Post reaction counts
// @Tags reactions
// @Param post_id path string true "post id"
// @Success 200 {object} response.Response{data=cache.Counts}
// @Router /api/v1/posts/{post_id}/reactions [get]
func (h *Handler) GetPostReactionCounts(c *gin.Context) {
	counts, err := h.reactions.Counts(c.Request.Context(), service.SubjectPost, c.Param("post_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, counts)
}

// GetCommentReactionCounts returns like/dislike tallies for a comment.
// @Summary Comment reaction counts
// @Tags reactions
// @Param comment_id path string true "comment id"
// @Success 200 {object} response.Response{data=cache.Counts}
// @Router /api/v1/comments/{comment_id}/reactions [get]
func (h *Handler) GetCommentReactionCounts(c *gin.Context) {
	counts, err := h.reactions.Counts(c.Request.Context(), service.SubjectComment, c.Param("comment_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, counts)
}
