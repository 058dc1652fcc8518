package repo

import (
	"context"

	"gorm.io/gorm"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Names returns every category name in ascending order.
func (r *CategoryRepo) Names(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).Model(&categoryModel{}).Order("name ASC").Pluck("name", &names).Error
	return names, err
}

func (r *CategoryRepo) Seed(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	rows := make([]categoryModel, 0, len(names))
	for _, n := range names {
		rows = append(rows, categoryModel{Name: n})
	}
	return r.db.WithContext(ctx).Clauses(onConflictNothing).Create(&rows).Error
}
