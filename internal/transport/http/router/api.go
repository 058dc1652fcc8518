package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gospelreach/internal/core/auth"
	"gospelreach/internal/core/cache"
	"gospelreach/internal/core/server"
	"gospelreach/internal/repo"
	"gospelreach/internal/service"
	httpez "gospelreach/internal/transport/http/ez"
	"gospelreach/internal/transport/http/handler"
	mdw "gospelreach/internal/transport/http/middleware"
)

type Options struct {
	MaxBodyBytes  int64
	MaxConcurrent int64
	CORSOrigins   []string
	Cache         *cache.Cache // nil disables category caching
	CategoryTTL   time.Duration
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, o Options) *gin.Engine {
	r := server.NewRouter(l, server.Options{
		CORSOrigins:  o.CORSOrigins,
		SkipLogPaths: []string{"/health", "/metrics"},
		RequestIDKey: mdw.KeyRequestID,
	})
	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.ConcurrencyLimit(o.MaxConcurrent),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	comments := repo.NewCommentRepo(db)
	likes := repo.NewLikeRepo(db)
	cats := repo.NewCategoryRepo(db)

	postSvc := service.NewPostService(posts, likes)
	gate := mdw.NewGate(jwter, users, l)

	var reg Registry
	reg.Register(
		handler.NewAuthHandler(service.NewAuthService(users, jwter), gate),
		handler.NewPostHandler(postSvc, gate),
		handler.NewCommentHandler(service.NewCommentService(comments, posts), gate),
		handler.NewLikeHandler(service.NewLikeService(likes), gate),
		handler.NewCategoryHandler(service.NewCategoryService(cats, o.Cache, o.CategoryTTL), postSvc, gate),
	)
	reg.MountAll(httpez.New(r, l))
	return r
}
