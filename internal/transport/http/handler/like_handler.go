package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gospelreach/internal/domain"
	httpez "gospelreach/internal/transport/http/ez"
	mdw "gospelreach/internal/transport/http/middleware"
)

type LikeService interface {
	Toggle(ctx context.Context, uid, postID int64) (domain.LikeToggle, error)
	Count(ctx context.Context, postID int64) (int64, error)
	Status(ctx context.Context, uid, postID int64) (bool, error)
}

type LikeHandler struct {
	svc  LikeService
	gate *mdw.Gate
}

func NewLikeHandler(svc LikeService, gate *mdw.Gate) *LikeHandler {
	return &LikeHandler{svc: svc, gate: gate}
}

type likeCountOut struct {
	PostID     int64 `json:"postId"`
	TotalLikes int64 `json:"totalLikes"`
}

type likeStatusOut struct {
	PostID int64 `json:"postId"`
	Liked  bool  `json:"liked"`
}

func (h *LikeHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[struct{}, domain.LikeToggle]{
		Method:     http.MethodPost,
		Path:       "/likes/:postId",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (domain.LikeToggle, error) {
			id, err := httpez.ParamID(c, "postId", postNotFound)
			if err != nil {
				return domain.LikeToggle{}, err
			}
			return h.svc.Toggle(c.Request.Context(), mdw.ViewerID(c), id)
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, likeCountOut]{
		Method: http.MethodGet,
		Path:   "/likes/:postId/count",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (likeCountOut, error) {
			id, err := httpez.ParamID(c, "postId", postNotFound)
			if err != nil {
				return likeCountOut{}, err
			}
			n, err := h.svc.Count(c.Request.Context(), id)
			return likeCountOut{PostID: id, TotalLikes: n}, err
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, likeStatusOut]{
		Method:     http.MethodGet,
		Path:       "/likes/:postId/status",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (likeStatusOut, error) {
			id, err := httpez.ParamID(c, "postId", postNotFound)
			if err != nil {
				return likeStatusOut{}, err
			}
			liked, err := h.svc.Status(c.Request.Context(), mdw.ViewerID(c), id)
			return likeStatusOut{PostID: id, Liked: liked}, err
		},
	})
}
