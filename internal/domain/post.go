package domain

import (
	"context"
	"time"
)

type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedPost is a post joined with its author and like aggregate.
// UserLiked is only ever true when a viewer identity was present.
type FeedPost struct {
	Post
	AuthorName string `json:"author_name"`
	TotalLikes int64  `json:"total_likes"`
	UserLiked  bool   `json:"user_liked"`
}

// PostFilter narrows List. An empty Category returns every post.
type PostFilter struct {
	Category string
}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*FeedPost, error)
	List(ctx context.Context, f PostFilter) ([]FeedPost, error)
	// UpdateOwned and DeleteOwned report false when no row matched both id and owner.
	UpdateOwned(ctx context.Context, p *Post) (bool, error)
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)
}
