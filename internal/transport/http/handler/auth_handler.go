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

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	DeleteAccount(ctx context.Context, uid int64) error
}

type AuthHandler struct {
	svc  AuthService
	gate *mdw.Gate
}

func NewAuthHandler(svc AuthService, gate *mdw.Gate) *AuthHandler {
	return &AuthHandler{svc: svc, gate: gate}
}

func (h *AuthHandler) Priority() int { return 10 }

type signupIn struct {
	Name     string `json:"name"     binding:"required,notblank"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authOut struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type meOut struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func toAuthOut(r *service.AuthResult) authOut {
	return authOut{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email, Token: r.Token}
}

func (h *AuthHandler) Mount(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[signupIn, authOut]{
		Method:   http.MethodPost,
		Path:     "/auth/signup",
		Binder:   httpez.BindJSON,
		Status:   http.StatusCreated,
		BadInput: "All fields are required",
		Handler: func(c *gin.Context, in *signupIn) (authOut, error) {
			res, err := h.svc.Signup(c.Request.Context(), in.Name, in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return toAuthOut(res), nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[loginIn, authOut]{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Binder:   httpez.BindJSON,
		BadInput: "Email and password are required",
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return toAuthOut(res), nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, meOut]{
		Method:     http.MethodGet,
		Path:       "/auth/me",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			return meOut{Message: "Authenticated", User: mdw.CurrentUser(c)}, nil
		},
	})

	httpez.RegisterAction(e, httpez.Action[struct{}, resp.Message]{
		Method:     http.MethodDelete,
		Path:       "/auth/me",
		Binder:     httpez.BindNone,
		Middleware: []gin.HandlerFunc{h.gate.Require()},
		Handler: func(c *gin.Context, _ *struct{}) (resp.Message, error) {
			if err := h.svc.DeleteAccount(c.Request.Context(), mdw.ViewerID(c)); err != nil {
				return resp.Message{}, err
			}
			return resp.Msg("Account deleted successfully."), nil
		},
	})
}
