package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gospelreach/internal/domain"
	"gospelreach/internal/service"
	httpez "gospelreach/internal/transport/http/ez"
	mdw "gospelreach/internal/transport/http/middleware"
	resp "gospelreach/internal/transport/http/response"
)

type PostService interface {
	Create(ctx context.Context, uid int64, in service.PostInput) (*domain.Post, error)
	Get(ctx context.Context, id, viewer int64) (*domain.FeedPost, error)
	List(ctx context.Context, viewer int64) ([]domain.FeedPost, error)
	ListByCategory(ctx context.Context, category string, viewer int64) ([]domain.FeedPost, error)
	Update(ctx context.Context, id, uid int64, in service.PostInput) (*domain.FeedPost, error)
	Delete(ctx context.Context, id, uid int64) error
}

type PostHandler struct {
	svc  PostService
	gate *mdw.Gate
}

func NewPostHandler(svc PostService, gate *mdw.Gate) *PostHandler {
	return &PostHandler{svc: svc, gate: gate}
}

const postNotFound = "Post not found."

type postIn struct {
	Title    string `json:"title"    binding:"required,notblank"`
	Content  string `json:"content"  binding:"required,notblank"`
	Category string `json:"category"`
}

func (in *postIn) toInput() service.PostInput {
	return service.PostInput{Title: in.Title, Content: in.Content, Category: in.Category}
}

func (h *PostHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.FeedPost]{
		Method:     http.MethodGet,
		Path:       "/posts",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Optional()},
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.FeedPost, error) {
			return h.svc.List(c.Request.Context(), mdw.ViewerID(c))
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.FeedPost]{
		Method:     http.MethodGet,
		Path:       "/posts/:id",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Optional()},
		Handler: func(c *gin.Context, _ *struct{}) (*domain.FeedPost, error) {
			id, err := httpez.ParamID(c, "id", postNotFound)
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id, mdw.ViewerID(c))
		},
	})

	httpez.RegisterAction(e, httpez.Action[postIn, *domain.Post]{
		Method:     http.MethodPost,
		Path:       "/posts",
		Binder:     httpez.BindJSON,
		Status:     http.StatusCreated,
		BadInput:   "Title and content are required.",
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, in *postIn) (*domain.Post, error) {
			return h.svc.Create(c.Request.Context(), mdw.ViewerID(c), in.toInput())
		},
	})

	httpez.RegisterAction(e, httpez.Action[postIn, *domain.FeedPost]{
		Method:     http.MethodPut,
		Path:       "/posts/:id",
		Binder:     httpez.BindJSON,
		BadInput:   "Title and content are required.",
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, in *postIn) (*domain.FeedPost, error) {
			id, err := httpez.ParamID(c, "id", postNotFound)
			if err != nil {
				return nil, err
			}
			return h.svc.Update(c.Request.Context(), id, mdw.ViewerID(c), in.toInput())
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, resp.Message]{
		Method:     http.MethodDelete,
		Path:       "/posts/:id",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			id, err := httpez.ParamID(c, "id", postNotFound)
			if err != nil {
				return resp.Message{}, err
			}
			if err := h.svc.Delete(c.Request.Context(), id, mdw.ViewerID(c)); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Post deleted successfully."), nil
		},
	})
}
