// Package ez registers typed actions on gin groups and maps their errors to HTTP responses.
package ez

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"gospelreach/internal/domain"
	resp "gospelreach/internal/transport/http/response"
)

type EZ struct {
	g   gin.IRoutes
	log *zap.Logger
}

func New(g gin.IRoutes, l *zap.Logger) EZ {
	registerValidators()
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

var validatorsOnce sync.Once

// registerValidators adds "notblank" to gin's validator.
func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			mustRegister(v, "notblank", validators.NotBlank)
		}
	})
}

// mustRegister panics at startup rather than on the first bind that uses tag.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("ez: register validator %q: %v", tag, err))
	}
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // read c.Param yourself
)

// AErr is an error that already knows its HTTP status.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// Action is one endpoint: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method     string
	Path       string
	Binder     Binder
	Status     int    // success status, 200 when zero
	BadInput   string // message for binding or validation failures
	Middleware []gin.HandlerFunc
	Handler    func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			var mbe *http.MaxBytesError
			if errors.As(bindErr, &mbe) {
				Fail(c, e.log, bindErr)
				return
			}
			Fail(c, e.log, BadRequest(a.BadInput))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		c.JSON(status, out)
	}

	handlers := append(append([]gin.HandlerFunc{}, a.Middleware...), h)
	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, handlers...)
	case http.MethodPut:
		e.g.PUT(a.Path, handlers...)
	case http.MethodDelete:
		e.g.DELETE(a.Path, handlers...)
	default:
		e.g.POST(a.Path, handlers...)
	}
}

// Fail renders err and aborts the chain. Unclassified errors are logged and hidden.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	code, msg := Classify(err)
	if code == http.StatusInternalServerError {
		if l != nil {
			l.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, resp.Error(code, msg))
}

// Classify maps an error to a status and a client-safe message.
func Classify(err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code == http.StatusInternalServerError {
			return ae.Code, ""
		}
		return ae.Code, ae.Msg
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge, ""
	}
	var de *domain.Error
	if errors.As(err, &de) {
		switch {
		case errors.Is(de.Kind, domain.ErrValidation), errors.Is(de.Kind, domain.ErrConflict):
			return http.StatusBadRequest, de.Msg
		case errors.Is(de.Kind, domain.ErrUnauthorized):
			return http.StatusUnauthorized, de.Msg
		case errors.Is(de.Kind, domain.ErrForbidden):
			return http.StatusForbidden, de.Msg
		case errors.Is(de.Kind, domain.ErrNotFound):
			return http.StatusNotFound, de.Msg
		}
	}
	return http.StatusInternalServerError, ""
}

// ParamID reads a positive integer path parameter. Anything else is a 404
// because no row can carry that id.
func ParamID(c *gin.Context, name, notFoundMsg string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, NotFound(notFoundMsg)
	}
	return id, nil
}
