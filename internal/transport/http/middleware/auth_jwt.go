package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gospelreach/internal/domain"
	resp "gospelreach/internal/transport/http/response"
)

const keyUser = "user"

type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Gate resolves a bearer token to a stored user.
type Gate struct {
	tokens TokenVerifier
	users  UserFinder
	log    *zap.Logger
}

func NewGate(tokens TokenVerifier, users UserFinder, l *zap.Logger) *Gate {
	if l == nil {
		l = zap.NewNop()
	}
	return &Gate{tokens: tokens, users: users, log: l}
}

var (
	errNoToken      = errors.New("no bearer token")
	errInvalidToken = errors.New("token rejected")
	errUnknownUser  = errors.New("token user does not exist")
)

// authMessages holds the client-facing text for each rejection.
var authMessages = map[error]string{
	errNoToken:      "No token provided",
	errInvalidToken: "Invalid or expired token",
	errUnknownUser:  "User not found",
}

// resolve returns one of the errors above for client mistakes and any other error for store failures.
func (g *Gate) resolve(c *gin.Context) (*domain.User, error) {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return nil, errNoToken
	}
	tok := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	uid, err := g.tokens.Verify(tok)
	if err != nil {
		return nil, errInvalidToken
	}
	u, err := g.users.FindByID(c.Request.Context(), uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUnknownUser
	}
	return u, nil
}

func isClientAuthErr(err error) bool {
	_, ok := authMessages[err]
	return ok
}

// Require rejects the request with 401 unless it carries a valid token for an existing user.
func (g *Gate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := g.resolve(c)
		if err != nil {
			if isClientAuthErr(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, authMessages[err]))
				return
			}
			g.log.Error("auth user lookup", zap.Error(err))
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(http.StatusInternalServerError, ""))
			return
		}
		c.Set(keyUser, u)
		c.Next()
	}
}

// Optional attaches the user when the token resolves and otherwise lets the request through anonymously.
func (g *Gate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := g.resolve(c)
		switch {
		case err == nil:
			c.Set(keyUser, u)
		case !isClientAuthErr(err):
			g.log.Warn("optional auth user lookup", zap.Error(err))
		}
		c.Next()
	}
}

// CurrentUser is nil on anonymous requests.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// ViewerID is 0 on anonymous requests.
func ViewerID(c *gin.Context) int64 {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}
