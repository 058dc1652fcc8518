package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"gospelreach/internal/domain"
	"gospelreach/internal/service"
	httpez "gospelreach/internal/transport/http/ez"
	mdw "gospelreach/internal/transport/http/middleware"
)

type MockPostService struct{ mock.Mock }

func (m *MockPostService) Create(ctx context.Context, uid int64, in service.PostInput) (*domain.Post, error) {
	args := m.Called(ctx, uid, in)
	p, _ := args.Get(0).(*domain.Post)
	return p, args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, id, viewer int64) (*domain.FeedPost, error) {
	args := m.Called(ctx, id, viewer)
	p, _ := args.Get(0).(*domain.FeedPost)
	return p, args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, viewer int64) ([]domain.FeedPost, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]domain.FeedPost), args.Error(1)
}

func (m *MockPostService) ListByCategory(ctx context.Context, category string, viewer int64) ([]domain.FeedPost, error) {
	args := m.Called(ctx, category, viewer)
	return args.Get(0).([]domain.FeedPost), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, id, uid int64, in service.PostInput) (*domain.FeedPost, error) {
	args := m.Called(ctx, id, uid, in)
	p, _ := args.Get(0).(*domain.FeedPost)
	return p, args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, id, uid int64) error {
	return m.Called(ctx, id, uid).Error(0)
}

var _ PostService = (*MockPostService)(nil)

type fixedTokens struct{}

func (fixedTokens) Verify(tok string) (int64, error) {
	if tok == "ann" {
		return 7, nil
	}
	return 0, errors.New("bad")
}

type fixedUsers struct{}

func (fixedUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Ann"}, nil
}

func postEngine(svc PostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gate := mdw.NewGate(fixedTokens{}, fixedUsers{}, nil)
	NewPostHandler(svc, gate).Mount(httpez.New(r, zap.NewNop()))
	return r
}

func serve(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPassesViewer(t *testing.T) {
	svc := new(MockPostService)
	svc.On("List", mock.Anything, int64(7)).Return([]domain.FeedPost{{Post: domain.Post{ID: 1}, UserLiked: true}}, nil)
	svc.On("List", mock.Anything, int64(0)).Return([]domain.FeedPost{}, nil)
	r := postEngine(svc)

	w := serve(r, http.MethodGet, "/posts", "ann", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_liked":true`)

	w = serve(r, http.MethodGet, "/posts", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestCreateRequiresAuthAndFields(t *testing.T) {
	svc := new(MockPostService)
	r := postEngine(svc)

	w := serve(r, http.MethodPost, "/posts", "", `{"title":"T","content":"C"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/posts", "ann", `{"title":"T"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Title and content are required."}`, w.Body.String())
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMapsServiceErrors(t *testing.T) {
	svc := new(MockPostService)
	in := service.PostInput{Title: "T", Content: "C"}
	svc.On("Update", mock.Anything, int64(3), int64(7), in).
		Return(nil, domain.NewError(domain.ErrForbidden, "You can only update your own posts."))
	svc.On("Update", mock.Anything, int64(4), int64(7), in).
		Return(nil, errors.New("connection reset"))
	r := postEngine(svc)

	w := serve(r, http.MethodPut, "/posts/3", "ann", `{"title":"T","content":"C"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"You can only update your own posts."}`, w.Body.String())

	w = serve(r, http.MethodPut, "/posts/4", "ann", `{"title":"T","content":"C"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
