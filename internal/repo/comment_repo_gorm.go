package repo

import (
	"context"

	"gorm.io/gorm"

	"gospelreach/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{PostID: c.PostID, UserID: c.UserID, Content: c.Content}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isFKViolation(err) {
			return domain.WrapError(domain.ErrNotFound, "Post not found.", err)
		}
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// ListByPost returns the thread oldest first, with author names. Unknown posts give an empty slice.
func (r *CommentRepo) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := r.db.WithContext(ctx).
		Table("comments AS c").
		Select("c.id, c.post_id, c.user_id, c.content, c.created_at, u.name AS author_name").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.post_id = ?", postID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommentRepo) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&commentModel{})
	return res.RowsAffected > 0, res.Error
}
