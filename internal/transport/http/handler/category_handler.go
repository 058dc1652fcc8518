package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gospelreach/internal/domain"
	httpez "gospelreach/internal/transport/http/ez"
	mdw "gospelreach/internal/transport/http/middleware"
)

type CategoryService interface {
	Names(ctx context.Context) ([]string, error)
}

// CategoryHandler also serves the per-category feed, which lives on the post service.
type CategoryHandler struct {
	cats  CategoryService
	posts PostService
	gate  *mdw.Gate
}

func NewCategoryHandler(cats CategoryService, posts PostService, gate *mdw.Gate) *CategoryHandler {
	return &CategoryHandler{cats: cats, posts: posts, gate: gate}
}

func (h *CategoryHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[struct{}, []string]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]string, error) {
			return h.cats.Names(c.Request.Context())
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.FeedPost]{
		Method:     http.MethodGet,
		Path:       "/categories/:name",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Optional()},
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.FeedPost, error) {
			return h.posts.ListByCategory(c.Request.Context(), c.Param("name"), mdw.ViewerID(c))
		},
	})
}
