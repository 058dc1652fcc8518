package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gospelreach/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

// feedRow is the flat scan target of the aggregate read.
type feedRow struct {
	ID         int64
	UserID     int64
	Title      string
	Content    string
	Category   string
	CreatedAt  time.Time
	AuthorName string
	TotalLikes int64
}

func (f feedRow) toDomain() domain.FeedPost {
	return domain.FeedPost{
		Post: domain.Post{
			ID:        f.ID,
			UserID:    f.UserID,
			Title:     f.Title,
			Content:   f.Content,
			Category:  f.Category,
			CreatedAt: f.CreatedAt,
		},
		AuthorName: f.AuthorName,
		TotalLikes: f.TotalLikes,
	}
}

const feedColumns = "p.id, p.user_id, p.title, p.content, p.category, p.created_at, " +
	"u.name AS author_name, " +
	"(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS total_likes"

func (r *PostRepo) feed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts AS p").
		Select(feedColumns).
		Joins("JOIN users u ON u.id = p.user_id")
}

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	m := postModel{UserID: p.UserID, Title: p.Title, Content: p.Content, Category: p.Category}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isFKViolation(err) {
			return domain.WrapError(domain.ErrNotFound, "User not found", err)
		}
		return err
	}
	*p = m.toDomain()
	return nil
}

func (r *PostRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", id).Limit(1).Count(&n).Error
	return n > 0, err
}

// FindByID returns (nil, nil) when the post does not exist.
func (r *PostRepo) FindByID(ctx context.Context, id int64) (*domain.FeedPost, error) {
	var rows []feedRow
	if err := r.feed(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	fp := rows[0].toDomain()
	return &fp, nil
}

// List returns the feed newest first. Category matching ignores case.
func (r *PostRepo) List(ctx context.Context, f domain.PostFilter) ([]domain.FeedPost, error) {
	q := r.feed(ctx)
	if f.Category != "" {
		q = q.Where("LOWER(p.category) = LOWER(?)", f.Category)
	}
	var rows []feedRow
	if err := q.Order("p.created_at DESC, p.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.FeedPost, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpdateOwned rewrites title, content and category in a single statement
// conditioned on both id and owner.
func (r *PostRepo) UpdateOwned(ctx context.Context, p *domain.Post) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{
			"title":    p.Title,
			"content":  p.Content,
			"category": p.Category,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *PostRepo) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&postModel{})
	return res.RowsAffected > 0, res.Error
}
