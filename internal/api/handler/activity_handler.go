package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/pkg/response"
)

// ListActivities pages through the activity feed, newest first. A user_id
// query narrows it to one actor.
// @Summary Activity feed
// @Tags activities
// @Param user_id query string false "filter by actor"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(20)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/activities [get]
func (h *Handler) ListActivities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	var userID *string
	if id := c.Query("user_id"); id != "" {
		userID = &id
	}
	list, err := h.activities.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
