package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gospelreach/internal/domain"
	httpez "gospelreach/internal/transport/http/ez"
	mdw "gospelreach/internal/transport/http/middleware"
	resp "gospelreach/internal/transport/http/response"
)

type CommentService interface {
	Create(ctx context.Context, author *domain.User, postID int64, content string) (*domain.Comment, error)
	List(ctx context.Context, postID int64) ([]domain.Comment, error)
	Delete(ctx context.Context, id, uid int64) error
}

type CommentHandler struct {
	svc  CommentService
	gate *mdw.Gate
}

func NewCommentHandler(svc CommentService, gate *mdw.Gate) *CommentHandler {
	return &CommentHandler{svc: svc, gate: gate}
}

type commentIn struct {
	PostID  int64  `json:"postId"  binding:"required,gt=0"`
	Content string `json:"content" binding:"required,notblank"`
}

func (h *CommentHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.Comment]{
		Method: http.MethodGet,
		Path:   "/comments/:postId",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Comment, error) {
			id, err := httpez.ParamID(c, "postId", postNotFound)
			if err != nil {
				return nil, err
			}
			return h.svc.List(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[commentIn, *domain.Comment]{
		Method:     http.MethodPost,
		Path:       "/comments",
		Binder:     httpez.BindJSON,
		Status:     http.StatusCreated,
		BadInput:   "Comment cannot be empty.",
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, in *commentIn) (*domain.Comment, error) {
			return h.svc.Create(c.Request.Context(), mdw.CurrentUser(c), in.PostID, in.Content)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, resp.Message]{
		Method:     http.MethodDelete,
		Path:       "/comments/:commentId",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			id, err := httpez.ParamID(c, "commentId", "Comment not found.")
			if err != nil {
				return resp.Message{}, err
			}
			if err := h.svc.Delete(c.Request.Context(), id, mdw.ViewerID(c)); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Comment deleted successfully."), nil
		},
	})
}
