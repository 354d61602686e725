package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-platform/internal/api/handler"
	"github.com/d60-Lab/blog-platform/internal/middleware"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

// NewRouter assembles the HTTP surface: global middleware, swagger, and the
// versioned API groups.
func NewRouter(h *handler.Handler, maker *token.Maker, serviceName string, rps float64, burst int) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware(serviceName),
		middleware.RateLimit(rps, burst),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := v1.Group("/users")
	{
		users.GET("/me", middleware.Auth(maker), h.Me)
		users.GET("/:user_id", h.GetUser)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:post_id", middleware.OptionalAuth(maker), h.GetPost)
		posts.GET("/:post_id/comments", h.ListComments)
		posts.GET("/:post_id/reactions", h.GetPostReactionCounts)

		authed := posts.Group("", middleware.Auth(maker))
		{
			authed.POST("", h.CreatePost)
			authed.PATCH("/:post_id", h.UpdatePost)
			authed.DELETE("/:post_id", h.DeletePost)
			authed.POST("/:post_id/comments", h.AddComment)
			authed.POST("/:post_id/reactions/:kind", h.TogglePostReaction)
		}
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:comment_id/replies", h.ListReplies)
		comments.GET("/:comment_id/reactions", h.GetCommentReactionCounts)

		authed := comments.Group("", middleware.Auth(maker))
		{
			authed.PATCH("/:comment_id", h.EditComment)
			authed.DELETE("/:comment_id", h.DeleteComment)
			authed.POST("/:comment_id/reactions/:kind", h.ToggleCommentReaction)
		}
	}

	v1.GET("/activities", h.ListActivities)

	return r
}
