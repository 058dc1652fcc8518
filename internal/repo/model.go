package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gospelreach/internal/domain"
)

type userModel struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         string    `gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (userModel) TableName() string { return "users" }

type postModel struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"not null;index"`
	User      *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title     string     `gorm:"type:text;not null"`
	Content   string     `gorm:"type:text;not null"`
	Category  string     `gorm:"size:50;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
}

func (postModel) TableName() string { return "posts" }

type commentModel struct {
	ID        int64      `gorm:"primaryKey"`
	PostID    int64      `gorm:"not null;index"`
	Post      *postModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    int64      `gorm:"not null;index"`
	User      *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (commentModel) TableName() string { return "comments" }

type likeModel struct {
	ID     int64      `gorm:"primaryKey"`
	UserID int64      `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	User   *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID int64      `gorm:"not null;uniqueIndex:idx_likes_user_post;index:idx_likes_post_id"`
	Post   *postModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (likeModel) TableName() string { return "likes" }

type categoryModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;uniqueIndex"`
}

func (categoryModel) TableName() string { return "categories" }

// Migrate creates or updates every table. Order matters for the foreign keys.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&userModel{}, &postModel{}, &commentModel{}, &likeModel{}, &categoryModel{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// SeedCategories inserts the reference categories, leaving existing names alone.
func SeedCategories(ctx context.Context, db *gorm.DB) error {
	return NewCategoryRepo(db).Seed(ctx, domain.DefaultCategories)
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

func (m *postModel) toDomain() domain.Post {
	return domain.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}

// onConflictNothing is shared by seeding and idempotent inserts.
var onConflictNothing = clause.OnConflict{DoNothing: true}
