package domain

import "context"

type LikeToggle struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

// LikeRepository backs the toggle. Insert returns ErrConflict when the
// (user, post) pair already exists and ErrNotFound when the post does not.
type LikeRepository interface {
	Exists(ctx context.Context, userID, postID int64) (bool, error)
	Insert(ctx context.Context, userID, postID int64) error
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	Count(ctx context.Context, postID int64) (int64, error)
	LikedPostIDs(ctx context.Context, userID int64) ([]int64, error)
}
