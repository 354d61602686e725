package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/middleware"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// GetUser fetches a public profile by id.
// @Summary Get user profile
// @Tags users
// @Param user_id path string true "user id"
// @Success 200 {object} response.Response{data=service.UserView}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, user)
}

// Me returns the authenticated user's own profile.
// @Summary Current user profile
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.UserView}
// @Failure 401 {object} response.Response
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, user)
}
