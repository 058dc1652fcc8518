package client

import (
	"context"
	"time"

	"gospelreach/internal/domain"
)

const DefaultPollInterval = 15 * time.Second

// PollFeed fetches the feed right away and then every interval until ctx ends.
// Each result goes to fn; errors do not stop the loop. Nothing is delivered
// once ctx is done.
func (c *Client) PollFeed(ctx context.Context, interval time.Duration, fn func([]domain.FeedPost, error)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		feed, err := c.ListPosts(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(feed, err)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
