package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var errEmptyList = errors.New("cache: empty list")

// GetOrLoadList caches a JSON encoded list under key. An empty result is
// returned as a non-nil empty slice and is not stored, so the next call
// asks the loader again. A corrupt entry is dropped and reloaded.
func GetOrLoadList[T any](c *Cache, ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]T, error)) ([]T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if len(v) == 0 {
			return nil, errEmptyList
		}
		return json.Marshal(v)
	})
	switch {
	case errors.Is(err, errEmptyList):
		return []T{}, nil
	case err != nil:
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		_ = c.Invalidate(ctx, key)
		if out, err = load(ctx); err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
