package domain

import (
	"context"
	"time"
)

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	UserID     int64     `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name,omitempty"`
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)
}
