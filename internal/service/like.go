package service

import (
	"context"
	"errors"
	"fmt"

	"gospelreach/internal/domain"
)

type LikeService struct {
	likes domain.LikeRepository
}

func NewLikeService(likes domain.LikeRepository) *LikeService {
	return &LikeService{likes: likes}
}

// Toggle flips uid's like on postID and reports the new state with a fresh count.
// Losing an insert race to the unique index counts as liked.
func (s *LikeService) Toggle(ctx context.Context, uid, postID int64) (domain.LikeToggle, error) {
	var out domain.LikeToggle
	exists, err := s.likes.Exists(ctx, uid, postID)
	if err != nil {
		return out, fmt.Errorf("like lookup: %w", err)
	}
	if exists {
		if _, err := s.likes.Delete(ctx, uid, postID); err != nil {
			return out, fmt.Errorf("unlike: %w", err)
		}
	} else {
		err := s.likes.Insert(ctx, uid, postID)
		switch {
		case err == nil, errors.Is(err, domain.ErrConflict):
			out.Liked = true
		case errors.Is(err, domain.ErrNotFound):
			return out, err
		default:
			return out, fmt.Errorf("like: %w", err)
		}
	}
	out.TotalLikes, err = s.likes.Count(ctx, postID)
	if err != nil {
		return out, fmt.Errorf("count likes: %w", err)
	}
	return out, nil
}

func (s *LikeService) Count(ctx context.Context, postID int64) (int64, error) {
	n, err := s.likes.Count(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (s *LikeService) Status(ctx context.Context, uid, postID int64) (bool, error) {
	ok, err := s.likes.Exists(ctx, uid, postID)
	if err != nil {
		return false, fmt.Errorf("like lookup: %w", err)
	}
	return ok, nil
}
