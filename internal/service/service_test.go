package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gospelreach/internal/core/auth"
	"gospelreach/internal/core/cache"
	"gospelreach/internal/domain"
	"gospelreach/internal/repo"
	"gospelreach/internal/service"
	"gospelreach/internal/testutil"
	"gospelreach/pkg/utils"
)

func init() { utils.PasswordCost = bcrypt.MinCost }

type services struct {
	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
	likes    *service.LikeService
	jwt      *auth.JWTer
}

func newServices(t *testing.T) services {
	db := testutil.NewDB(t)
	users, posts := repo.NewUserRepo(db), repo.NewPostRepo(db)
	likes, comments := repo.NewLikeRepo(db), repo.NewCommentRepo(db)
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}
	return services{
		auth:     service.NewAuthService(users, j),
		posts:    service.NewPostService(posts, likes),
		comments: service.NewCommentService(comments, posts),
		likes:    service.NewLikeService(likes),
		jwt:      j,
	}
}

func (s services) signup(t *testing.T, name string) *domain.User {
	res, err := s.auth.Signup(context.Background(), name, name+"@x.com", "pw")
	require.NoError(t, err)
	return res.User
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	res, err := s.auth.Signup(ctx, "Ann", "a@x.com", "pw")
	require.NoError(t, err)
	assert.Positive(t, res.User.ID)
	uid, err := s.jwt.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, uid)

	_, err = s.auth.Signup(ctx, "Ann Again", "a@x.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.auth.Signup(ctx, " ", "b@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := s.auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)

	_, err = s.auth.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.auth.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, s.auth.DeleteAccount(ctx, res.User.ID))
	assert.ErrorIs(t, s.auth.DeleteAccount(ctx, res.User.ID), domain.ErrNotFound)
}

func TestPostOwnershipRules(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ann, bob := s.signup(t, "ann"), s.signup(t, "bob")

	_, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "  ", Content: "c"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "T", Content: "C", Category: "Prayer"})
	require.NoError(t, err)
	assert.Equal(t, ann.ID, p.UserID)

	_, err = s.posts.Update(ctx, p.ID, bob.ID, service.PostInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, s.posts.Delete(ctx, p.ID, bob.ID), domain.ErrForbidden)

	up, err := s.posts.Update(ctx, p.ID, ann.ID, service.PostInput{Title: "T2", Content: "C2"})
	require.NoError(t, err)
	assert.Equal(t, "T2", up.Title)
	assert.Empty(t, up.Category)
	assert.Equal(t, "ann", up.AuthorName)

	require.NoError(t, s.posts.Delete(ctx, p.ID, ann.ID))
	_, err = s.posts.Get(ctx, p.ID, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeedViewerAnnotation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ann, bob := s.signup(t, "ann"), s.signup(t, "bob")
	p1, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "one", Content: "c", Category: "Prayer"})
	require.NoError(t, err)
	_, err = s.posts.Create(ctx, ann.ID, service.PostInput{Title: "two", Content: "c", Category: "Theology"})
	require.NoError(t, err)
	_, err = s.likes.Toggle(ctx, bob.ID, p1.ID)
	require.NoError(t, err)

	anon, err := s.posts.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, anon, 2)
	for _, fp := range anon {
		assert.False(t, fp.UserLiked)
	}

	feed, err := s.posts.List(ctx, bob.ID)
	require.NoError(t, err)
	liked := map[int64]bool{}
	for _, fp := range feed {
		liked[fp.ID] = fp.UserLiked
	}
	assert.True(t, liked[p1.ID])
	assert.Len(t, liked, 2)

	prayer, err := s.posts.ListByCategory(ctx, "prayer", bob.ID)
	require.NoError(t, err)
	require.Len(t, prayer, 1)
	assert.True(t, prayer[0].UserLiked)
	assert.Equal(t, int64(1), prayer[0].TotalLikes)

	one, err := s.posts.Get(ctx, p1.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, one.UserLiked)
}

func TestCommentRules(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ann, bob := s.signup(t, "ann"), s.signup(t, "bob")
	p, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = s.comments.Create(ctx, bob, p.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.comments.Create(ctx, bob, 9999, "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c, err := s.comments.Create(ctx, bob, p.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "bob", c.AuthorName)

	assert.ErrorIs(t, s.comments.Delete(ctx, c.ID, ann.ID), domain.ErrForbidden)
	require.NoError(t, s.comments.Delete(ctx, c.ID, bob.ID))

	list, err := s.comments.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleTwiceRestoresCount(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ann, bob := s.signup(t, "ann"), s.signup(t, "bob")
	p, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	_, err = s.likes.Toggle(ctx, ann.ID, p.ID)
	require.NoError(t, err)

	before, err := s.likes.Count(ctx, p.ID)
	require.NoError(t, err)

	on, err := s.likes.Toggle(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, on.Liked)
	assert.Equal(t, before+1, on.TotalLikes)

	liked, err := s.likes.Status(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	off, err := s.likes.Toggle(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, off.Liked)
	assert.Equal(t, before, off.TotalLikes)

	_, err = s.likes.Toggle(ctx, bob.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentTogglesFromFreshStateAllLike(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ann := s.signup(t, "ann")
	p, err := s.posts.Create(ctx, ann.ID, service.PostInput{Title: "T", Content: "C"})
	require.NoError(t, err)

	// every caller may observe "absent" and insert; the unique index keeps one row
	m := new(mockLikes)
	m.On("Exists", mock.Anything, ann.ID, p.ID).Return(false, nil)
	m.On("Insert", mock.Anything, ann.ID, p.ID).Return(nil).Once()
	m.On("Insert", mock.Anything, ann.ID, p.ID).Return(domain.NewError(domain.ErrConflict, "Already liked"))
	m.On("Count", mock.Anything, p.ID).Return(int64(1), nil)
	svc := service.NewLikeService(m)

	const n = 10
	var wg sync.WaitGroup
	results := make([]domain.LikeToggle, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Toggle(ctx, ann.ID, p.ID)
		}()
	}
	wg.Wait()
	for i := range n {
		require.NoError(t, errs[i])
		assert.True(t, results[i].Liked)
		assert.Equal(t, int64(1), results[i].TotalLikes)
	}
	m.AssertNumberOfCalls(t, "Insert", n)
}

func TestToggleSurfacesStoreFailure(t *testing.T) {
	m := new(mockLikes)
	boom := errors.New("db down")
	m.On("Exists", mock.Anything, int64(1), int64(2)).Return(false, boom)
	_, err := service.NewLikeService(m).Toggle(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
	m.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryNamesCached(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	cats := new(mockCategories)
	cats.On("Names", mock.Anything).Return([]string{"Prayer", "Theology"}, nil).Once()
	cats.On("Seed", mock.Anything, []string{"Missions"}).Return(nil)
	svc := service.NewCategoryService(cats, c, time.Minute)

	for range 3 {
		names, err := svc.Names(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Prayer", "Theology"}, names)
	}
	cats.AssertNumberOfCalls(t, "Names", 1)

	require.NoError(t, svc.Seed(ctx, []string{"Missions"}))
	assert.False(t, mr.Exists("gospelreach:categories"))
}

func TestCategoryNamesWithoutCache(t *testing.T) {
	cats := new(mockCategories)
	cats.On("Names", mock.Anything).Return([]string(nil), nil)
	names, err := service.NewCategoryService(cats, nil, 0).Names(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

type mockLikes struct{ mock.Mock }

func (m *mockLikes) Exists(ctx context.Context, uid, pid int64) (bool, error) {
	args := m.Called(ctx, uid, pid)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikes) Insert(ctx context.Context, uid, pid int64) error {
	return m.Called(ctx, uid, pid).Error(0)
}

func (m *mockLikes) Delete(ctx context.Context, uid, pid int64) (bool, error) {
	args := m.Called(ctx, uid, pid)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikes) Count(ctx context.Context, pid int64) (int64, error) {
	args := m.Called(ctx, pid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikes) LikedPostIDs(ctx context.Context, uid int64) ([]int64, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]int64), args.Error(1)
}

var _ domain.LikeRepository = (*mockLikes)(nil)

type mockCategories struct{ mock.Mock }

func (m *mockCategories) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCategories) Seed(ctx context.Context, names []string) error {
	return m.Called(ctx, names).Error(0)
}

var _ domain.CategoryRepository = (*mockCategories)(nil)
