package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth       service.AuthService
	users      service.UserService
	posts      service.PostService
	comments   service.CommentService
	reactions  service.ReactionService
	activities service.ActivityService
}

func New(
	auth service.AuthService,
	users service.UserService,
	posts service.PostService,
	comments service.CommentService,
	reactions service.ReactionService,
	activities service.ActivityService,
) *Handler {
	return &Handler{
		auth:       auth,
		users:      users,
		posts:      posts,
		comments:   comments,
		reactions:  reactions,
		activities: activities,
	}
}

// respondErr maps service sentinels onto HTTP statuses. Anything unmapped is
// logged and answered with a generic 500.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
