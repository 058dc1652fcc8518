package repo

import (
	"context"

	"gorm.io/gorm"

	"gospelreach/internal/domain"
)

type LikeRepo struct{ db *gorm.DB }

func NewLikeRepo(db *gorm.DB) *LikeRepo { return &LikeRepo{db: db} }

func (r *LikeRepo) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&likeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *LikeRepo) Insert(ctx context.Context, userID, postID int64) error {
	err := r.db.WithContext(ctx).Create(&likeModel{UserID: userID, PostID: postID}).Error
	switch {
	case err == nil:
		return nil
	case isDupKey(err):
		return domain.WrapError(domain.ErrConflict, "Already liked", err)
	case isFKViolation(err):
		return domain.WrapError(domain.ErrNotFound, "Post not found.", err)
	}
	return err
}

func (r *LikeRepo) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&likeModel{})
	return res.RowsAffected > 0, res.Error
}

func (r *LikeRepo) Count(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&likeModel{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// LikedPostIDs is the single lookup used to annotate a feed for one viewer.
func (r *LikeRepo) LikedPostIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&likeModel{}).Where("user_id = ?", userID).Pluck("post_id", &ids).Error
	return ids, err
}
