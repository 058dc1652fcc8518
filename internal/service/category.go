package service

import (
	"context"
	"fmt"
	"time"

	"gospelreach/internal/core/cache"
	"gospelreach/internal/domain"
)

// CategoriesCacheKey is the cache key of the sorted name list.
const CategoriesCacheKey = "categories"

type CategoryService struct {
	cats  domain.CategoryRepository
	cache *cache.Cache // nil disables caching
	ttl   time.Duration
}

func NewCategoryService(cats domain.CategoryRepository, c *cache.Cache, ttl time.Duration) *CategoryService {
	return &CategoryService{cats: cats, cache: c, ttl: ttl}
}

func (s *CategoryService) Names(ctx context.Context) ([]string, error) {
	var (
		names []string
		err   error
	)
	if s.cache == nil {
		names, err = s.cats.Names(ctx)
	} else {
		names, err = cache.GetOrLoadList(s.cache, ctx, CategoriesCacheKey, s.ttl, s.cats.Names)
	}
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Seed inserts names that are missing and drops the cached list.
func (s *CategoryService) Seed(ctx context.Context, names []string) error {
	if err := s.cats.Seed(ctx, names); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if s.cache != nil {
		return s.cache.Invalidate(ctx, CategoriesCacheKey)
	}
	return nil
}
