package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gospelreach/internal/domain"
)

const maxCategoryLen = 50

// PostInput is the mutable part of a post.
type PostInput struct {
	Title    string
	Content  string
	Category string
}

func (in PostInput) normalize() (PostInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || in.Content == "" {
		return in, domain.NewError(domain.ErrValidation, "Title and content are required.")
	}
	if utf8.RuneCountInString(in.Category) > maxCategoryLen {
		return in, domain.NewError(domain.ErrValidation, "Category must be at most 50 characters.")
	}
	return in, nil
}

type PostService struct {
	posts domain.PostRepository
	likes domain.LikeRepository
}

func NewPostService(posts domain.PostRepository, likes domain.LikeRepository) *PostService {
	return &PostService{posts: posts, likes: likes}
}

func (s *PostService) Create(ctx context.Context, uid int64, in PostInput) (*domain.Post, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	p := &domain.Post{UserID: uid, Title: in.Title, Content: in.Content, Category: in.Category}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one feed row. viewer 0 means anonymous.
func (s *PostService) Get(ctx context.Context, id, viewer int64) (*domain.FeedPost, error) {
	fp, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if fp == nil {
		return nil, domain.NewError(domain.ErrNotFound, "Post not found.")
	}
	if viewer > 0 {
		fp.UserLiked, err = s.likes.Exists(ctx, viewer, id)
		if err != nil {
			return nil, fmt.Errorf("like lookup: %w", err)
		}
	}
	return fp, nil
}

func (s *PostService) List(ctx context.Context, viewer int64) ([]domain.FeedPost, error) {
	return s.list(ctx, domain.PostFilter{}, viewer)
}

func (s *PostService) ListByCategory(ctx context.Context, category string, viewer int64) ([]domain.FeedPost, error) {
	return s.list(ctx, domain.PostFilter{Category: strings.TrimSpace(category)}, viewer)
}

func (s *PostService) list(ctx context.Context, f domain.PostFilter, viewer int64) ([]domain.FeedPost, error) {
	feed, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if viewer <= 0 || len(feed) == 0 {
		return feed, nil
	}
	ids, err := s.likes.LikedPostIDs(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("liked posts: %w", err)
	}
	liked := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	for i := range feed {
		_, feed[i].UserLiked = liked[feed[i].ID]
	}
	return feed, nil
}

// Update rewrites the post only if uid owns it, then returns the fresh feed row.
func (s *PostService) Update(ctx context.Context, id, uid int64, in PostInput) (*domain.FeedPost, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	ok, err := s.posts.UpdateOwned(ctx, &domain.Post{ID: id, UserID: uid, Title: in.Title, Content: in.Content, Category: in.Category})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if !ok {
		return nil, domain.NewError(domain.ErrForbidden, "You can only update your own posts.")
	}
	return s.Get(ctx, id, uid)
}

func (s *PostService) Delete(ctx context.Context, id, uid int64) error {
	ok, err := s.posts.DeleteOwned(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !ok {
		return domain.NewError(domain.ErrForbidden, "You can only delete your own posts.")
	}
	return nil
}
