package service

import (
	"context"
	"fmt"
	"strings"

	"gospelreach/internal/domain"
)

type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
}

func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create adds a comment by author. The returned comment carries the author's name.
func (s *CommentService) Create(ctx context.Context, author *domain.User, postID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewError(domain.ErrValidation, "Comment cannot be empty.")
	}
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post lookup: %w", err)
	}
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, "Post not found.")
	}
	c := &domain.Comment{PostID: postID, UserID: author.ID, Content: content}
	// the post can vanish between the check and the insert; the foreign key catches that
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	c.AuthorName = author.Name
	return c, nil
}

func (s *CommentService) List(ctx context.Context, postID int64) ([]domain.Comment, error) {
	list, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return list, nil
}

func (s *CommentService) Delete(ctx context.Context, id, uid int64) error {
	ok, err := s.comments.DeleteOwned(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if !ok {
		return domain.NewError(domain.ErrForbidden, "You can only delete your own comments.")
	}
	return nil
}
