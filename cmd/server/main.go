package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-platform/config"
	_ "github.com/d60-Lab/blog-platform/docs"
	"github.com/d60-Lab/blog-platform/internal/api"
	"github.com/d60-Lab/blog-platform/internal/api/handler"
	"github.com/d60-Lab/blog-platform/internal/cache"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/database"
	"github.com/d60-Lab/blog-platform/pkg/logger"
	"github.com/d60-Lab/blog-platform/pkg/media"
	"github.com/d60-Lab/blog-platform/pkg/telemetry"
	"github.com/d60-Lab/blog-platform/pkg/token"
)

// @title Blog Platform API
// @version 1.0
// @description Posts, threaded comments, reactions, and the activity feed.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Trace.ServiceName, cfg.Trace.Endpoint)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, reaction cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	gin.SetMode(cfg.Server.Mode)

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	postReactions := repository.NewPostReactionRepository(db)
	commentReactions := repository.NewCommentReactionRepository(db)
	activities := repository.NewActivityRepository(db)

	resolver := media.NewResolver(cfg.Media.BaseURL)
	maker := token.NewMaker(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	counts := cache.NewReactionCounts(rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)

	h := handler.New(
		service.NewAuthService(users, maker, resolver),
		service.NewUserService(users, resolver),
		service.NewPostService(db, posts, comments, postReactions, users, resolver),
		service.NewCommentService(db, comments, posts, resolver),
		service.NewReactionService(db, postReactions, commentReactions, counts),
		service.NewActivityService(activities),
	)

	router := api.NewRouter(h, maker, cfg.Trace.ServiceName, 50, 100)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
